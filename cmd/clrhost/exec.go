package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/clrhost/runtime"
)

type execOptions struct {
	host        hostOptions
	assembly    string
	interactive bool
}

func newExecCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &execOptions{}

	cmd := &cobra.Command{
		Use:   "exec --config FILE [flags] [-- args...]",
		Short: "Execute a managed assembly",
		Long: `Initialize the runtime from a config file and run the entry point of a
managed assembly. Arguments after -- replace the args from the config.
The command exits with the exit code of the managed program.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(rootOpts, opts, args)
		},
	}

	opts.host.register(cmd)
	cmd.Flags().StringVar(&opts.assembly, "assembly", "", "assembly to execute (overrides the config)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "review properties before launch")

	return cmd
}

func runExec(rootOpts *rootOptions, opts *execOptions, args []string) error {
	cfg, bag, err := opts.host.load()
	if err != nil {
		return err
	}

	assembly := opts.assembly
	if assembly == "" {
		assembly = cfg.Assembly
	}
	if assembly == "" {
		return errors.New("no assembly to execute: set assembly in the config or pass --assembly")
	}
	if len(args) == 0 {
		args = cfg.Args
	}

	if opts.interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("interactive review needs a terminal")
		}
		reviewed, launch, err := runInteractive(bag, assembly)
		if err != nil {
			return fmt.Errorf("review: %w", err)
		}
		if !launch {
			return nil
		}
		bag = reviewed
	}

	bag.Log()

	rt, err := runtime.New(cfg.LibraryDir, cfg.ExePath, cfg.FriendlyName, bag, rootOpts.runtimeOpts...)
	if err != nil {
		return err
	}

	code, execErr := rt.ExecuteAssembly(args, assembly)
	_, shutdownErr := rt.Shutdown()
	if err := errors.Join(execErr, shutdownErr); err != nil {
		return err
	}

	if code != 0 {
		return exitError(code)
	}
	return nil
}

