// Package tools defines the Tool interface for LLM agents: named,
// described operations with a JSON parameter schema that let an agent
// interact with external systems through a single Call entry point.
package tools
