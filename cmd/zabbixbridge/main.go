// Command zabbixbridge drives the Zabbix agent tools from the shell:
// list the available tools, or invoke one with a JSON input string and
// print the shaped result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/zabbixbridge/tools"
	"github.com/effective-security/zabbixbridge/tools/zabbixtool"
	"github.com/effective-security/zabbixbridge/zabbix"
)

func main() {
	cfgFile := flag.String("cfg", "", "path to the configuration file")
	list := flag.Bool("list", false, "print tool descriptions and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.ERROR)
	}

	if err := run(*cfgFile, *list, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "zabbixbridge: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile string, list bool, args []string) error {
	if cfgFile == "" {
		return errors.New("usage: zabbixbridge -cfg <file> [-list] <tool> [json-input]")
	}
	cfg, err := zabbix.LoadConfig(cfgFile)
	if err != nil {
		return errors.WithMessage(err, "failed to load configuration")
	}
	ts, err := zabbixtool.New(cfg)
	if err != nil {
		return err
	}

	if list {
		fmt.Println(tools.GetDescriptions(ts.Tools()...))
		return nil
	}
	if len(args) == 0 {
		return errors.New("no tool name given; use -list to see the available tools")
	}

	name := args[0]
	input := ""
	if len(args) > 1 {
		input = args[1]
	}
	for _, tool := range ts.Tools() {
		if tool.Name() == name {
			out, err := tool.Call(context.Background(), input)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}
	}
	return errors.Errorf("unknown tool: %q", name)
}
