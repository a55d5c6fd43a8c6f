package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	herrors "github.com/matzehuels/heft/pkg/errors"
)

// Exit codes returned by Execute.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitCanceled = 130 // shell convention for SIGINT
)

// Execute runs heft with args and returns the process exit code. Reports go
// to stdout; logs and the failure diagnostic go to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := New(stderr, LogInfo)
	c.Out = stdout

	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return exitCode(stderr, root.ExecuteContext(ctx))
}

// exitCode writes the diagnostic for err, if any, and maps it to an exit code.
// Every failure carries its error code so scripts can tell a missing import
// from a syntax error:
//
//	Error: cannot resolve "./b" from /proj/a.ts: no such file
//	Code:  RESOLUTION_ERROR
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	}

	fmt.Fprintln(w, "Error:", herrors.UserMessage(err))
	if code := herrors.GetCode(err); code != "" {
		fmt.Fprintln(w, "Code: ", code)
	}
	return ExitFailure
}
