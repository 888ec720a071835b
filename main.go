package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/cloudposse/whence/cmd"
	errUtils "github.com/cloudposse/whence/errors"
)

func main() {
	// Timestamps add nothing to a one-shot CLI run.
	log.SetReportTimestamp(false)

	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(run())
}

// run executes the application and returns an exit code. The separation keeps
// os.Exit out of the error path so deferred cleanup can run.
func run() int {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	return 0
}
