// Package cli contains the command line interface for cellang.
//
// # Usage
//
// The CLI evaluates spreadsheet-style formulas against variable bindings
// loaded from YAML:
//
//	cellang '{{price}} * {{qty}}' --vars bindings.yaml
//	cellang 'SUM(1; 2; 3)'
//	cellang describe 'IF({{a}} > 1; "big"; "small")'
//	cellang repl --set price=9.99
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
