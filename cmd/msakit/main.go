// 16 Oct 2026
// Command line front end. Each command fills in the Options of one
// library package and runs it.

package main

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/andrew-torda/msakit/pkg/seq/common"
)

// usageErr marks mistakes on the command line, so we can exit with
// the right code.
type usageErr struct{ error }

func usagef(format string, a ...interface{}) error {
	return usageErr{errors.Errorf(format, a...)}
}

func newRoot(logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "msakit",
		Short:         "concatenate, convert, filter and split sequence alignments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErr{err}
	})
	root.AddCommand(
		concatCmd(logger),
		convertCmd(logger),
		filterCmd(logger),
		seqlenCmd(logger),
		splitCmd(logger),
	)
	return root
}

func main() {
	logger := log.New(os.Stderr, "msakit: ", 0)
	err := newRoot(logger).Execute()
	if err == nil {
		os.Exit(common.ExitSuccess)
	}
	logger.Println(err)
	if _, ok := errors.Cause(err).(usageErr); ok {
		os.Exit(common.ExitUsageError)
	}
	os.Exit(common.ExitFailure)
}
