// Command clrhost hosts a managed runtime and runs assemblies in it.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wippyai/clrhost/runtime"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer, runtimeOpts ...runtime.Option) int {
	cmd := newRootCommand(runtimeOpts...)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr.Code()
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
