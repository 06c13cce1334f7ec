// Package server holds the MCP server runtime: the shared server context
// wrapping the booking engine, Prometheus metrics for tool invocations, and
// the sidecar HTTP server exposing /metrics and health probes.
package server
