package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPropertiesCommand() *cobra.Command {
	opts := &hostOptions{}

	cmd := &cobra.Command{
		Use:   "properties --config FILE [--set KEY=VALUE]...",
		Short: "Print the runtime properties a config produces",
		Long: `Print the properties passed to the runtime, one KEY=VALUE per line,
in the order they are handed over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, bag, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for k, v := range bag.All() {
				fmt.Fprintf(out, "%s=%s\n", k, v)
			}
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
