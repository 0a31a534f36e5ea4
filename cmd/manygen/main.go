// Command manygen generates marker-specific encodings for types annotated
// with //many:markers.
//
// It is usually run through go generate:
//
//	//go:generate go run github.com/zoobzio/many/cmd/manygen
//
// Without arguments manygen processes $GOFILE when set by go generate, and
// the current directory otherwise.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "manygen [dirs or files...]",
		Short: "Generate marker-specific encodings for annotated Go types",
		Long: `manygen reads //many:markers declarations and many struct tags and writes,
for every annotated type, a companion file holding one shadow type per marker
and the MarshalMany/UnmarshalMany dispatchers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return run(cmd.Context(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.types, "type", nil, "only generate the named types (repeatable)")
	flags.StringVar(&opts.suffix, "suffix", "", "generated file suffix (default \"_many.go\")")
	flags.StringVar(&opts.configPath, "config", "", "path to many.toml (default: nearest above each package)")
	flags.BoolVar(&opts.check, "check", false, "fail when generated files are missing or stale instead of writing them")
	flags.StringSliceVar(&opts.tags, "tags", nil, "tag keys rename_all writes (default json,yaml,msgpack,bson,xml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
