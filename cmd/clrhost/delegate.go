package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/clrhost/runtime"
)

type delegateOptions struct {
	host         hostOptions
	assemblyName string
	typeName     string
	methodName   string
}

func newDelegateCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &delegateOptions{}

	cmd := &cobra.Command{
		Use:   "delegate --config FILE --assembly-name NAME --type TYPE --method METHOD",
		Short: "Resolve a native-callable pointer to a static managed method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelegate(rootOpts, opts, cmd)
		},
	}

	opts.host.register(cmd)
	cmd.Flags().StringVar(&opts.assemblyName, "assembly-name", "", "name of the assembly holding the method")
	cmd.Flags().StringVar(&opts.typeName, "type", "", "fully qualified type name")
	cmd.Flags().StringVar(&opts.methodName, "method", "", "static method name")
	_ = cmd.MarkFlagRequired("assembly-name")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func runDelegate(rootOpts *rootOptions, opts *delegateOptions, cmd *cobra.Command) error {
	cfg, bag, err := opts.host.load()
	if err != nil {
		return err
	}
	bag.Log()

	rt, err := runtime.New(cfg.LibraryDir, cfg.ExePath, cfg.FriendlyName, bag, rootOpts.runtimeOpts...)
	if err != nil {
		return err
	}

	delegate, delegateErr := rt.CreateDelegate(opts.assemblyName, opts.typeName, opts.methodName)
	_, shutdownErr := rt.Shutdown()
	if err := errors.Join(delegateErr, shutdownErr); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "0x%x\n", uintptr(delegate))
	return nil
}
