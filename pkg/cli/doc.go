/*
Package cli provides command-line interface utilities shared by the
sparqlate command: structured command/config errors, a progress reporter
for long-running probes, and graceful signal handling.

Result output is the domain of pkg/format, not this package — formatting
an ExecutionResult is a typed, domain-specific transformation (spec.md
§6), not a generic interface{} renderer, so it lives next to the type it
renders.

Error Reporting:

	if err := doSomething(); err != nil {
		return cli.NewCommandError("discover", err)
	}

Progress Reporting:

For long-running operations, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(totalItems)
	for i := 0; i < totalItems; i++ {
		// Do work
		progress.Update(i + 1)
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
