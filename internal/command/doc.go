// Package command provides controlled execution of external commands.
//
// Every external process started by gemini-mcp goes through this package.
// Direct use of os/exec elsewhere is avoided so that stream capture, exit
// code mapping and cancellation behave the same everywhere.
//
// Features:
//   - Separate capture of stdout and stderr, decoded and trimmed
//   - Optional stdin payload; stdin is left unconnected when none is given
//   - Optional per-command timeout and working directory
//   - Context cancellation kills the child process
//   - Typed *ExitError carrying the exit code and captured stderr
//   - A bounded, independent Probe path for version checks
//   - Fluent builder interface for assembling a Spec
//
// Basic usage:
//
//	res, err := command.Run(ctx, command.Spec{Name: "echo", Args: []string{"hello"}})
//
//	// Command with input and a working directory
//	res, err := command.NewCommand("grep", "pattern").
//	    WithInput("input data").
//	    WithDir("/tmp").
//	    WithContext(ctx).
//	    Run()
//
//	// Bounded version probe
//	res, err := command.Probe(ctx, 10*time.Second, "gemini", "--version")
//
// A zero Timeout means the command runs until it exits or its context is
// canceled. Commands that exceed a configured timeout are terminated.
package command
