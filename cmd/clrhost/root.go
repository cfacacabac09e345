package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/clrhost"
	"github.com/wippyai/clrhost/config"
	"github.com/wippyai/clrhost/property"
	"github.com/wippyai/clrhost/runtime"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	Verbose bool

	runtimeOpts []runtime.Option
}

func newRootCommand(runtimeOpts ...runtime.Option) *cobra.Command {
	opts := &rootOptions{runtimeOpts: runtimeOpts}

	cmd := &cobra.Command{
		Use:           "clrhost",
		Short:         "Host a managed runtime",
		Long:          "Bind the runtime library, initialize a hosting session from a config file and run managed code in it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			clrhost.SetLogger(newLogger(cmd.ErrOrStderr(), opts.Verbose))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newExecCommand(opts))
	cmd.AddCommand(newDelegateCommand(opts))
	cmd.AddCommand(newPropertiesCommand())
	cmd.AddCommand(newSchemaCommand())

	return cmd
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// hostOptions are the flags shared by commands that read a config.
type hostOptions struct {
	configPath string
	sets       []string
}

func (o *hostOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "host config file (.yaml, .yml or .hcl)")
	cmd.Flags().StringArrayVar(&o.sets, "set", nil, "set a runtime property, KEY=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("config")
}

// load reads the config and builds its property bag with --set applied last.
func (o *hostOptions) load() (*config.HostConfig, *property.Bag, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	bag := cfg.PropertyBag()
	for _, s := range o.sets {
		key, value, err := parseAssignment(s)
		if err != nil {
			return nil, nil, err
		}
		bag.Add(key, value)
	}
	return cfg, bag, nil
}

func parseAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid --set %q: want KEY=VALUE", s)
	}
	if strings.ContainsRune(s, 0) {
		return "", "", fmt.Errorf("invalid --set %q: contains NUL", s)
	}
	return key, value, nil
}
