package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MrSnakeDoc/scape/internal/logger"
	"github.com/MrSnakeDoc/scape/internal/output"
	"github.com/MrSnakeDoc/scape/internal/version"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	outputFmt string
	queryExpr string
	debug     bool

	format output.Format
	log    logger.Logger
}

// NewRootCmd builds the scape command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{log: logger.NewNop()}

	root := &cobra.Command{
		Use:   "scape",
		Short: "Parse Netscape bookmark exports and jump to bookmarks",
		Long: `scape reads the bookmark export files written by Chrome, Firefox,
Internet Explorer and compatible browsers.

Run "scape serve" to index an export and redirect search queries to the
best matching bookmark, or use the other commands to inspect an export.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.outputFmt, "output", "o", "", "output format: text|json|ndjson|yaml|table")
	flags.StringVarP(&opts.queryExpr, "query", "q", "", "jq expression applied to structured output")
	flags.BoolVar(&opts.debug, "debug", false, "log debug information to stderr")

	root.AddCommand(
		newServeCmd(),
		newExportCmd(opts),
		newBookmarksCmd(opts),
		newFindCmd(opts),
		newOutlineCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

// setup resolves the output format: --output wins, then JSON when stdout is
// not a terminal, then text.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	formatStr := o.outputFmt
	if !cmd.Flags().Changed("output") && !isTerminal(cmd.OutOrStdout()) {
		formatStr = string(output.FormatJSON)
	}
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	if o.queryExpr != "" && !output.IsStructured(format) {
		if cmd.Flags().Changed("output") {
			return fmt.Errorf("--query needs --output json, ndjson or yaml")
		}
		format = output.FormatJSON
	}
	o.format = format

	if o.debug {
		o.log = logger.New("debug", true)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = output.WithFormat(ctx, format)
	ctx = output.WithQuery(ctx, o.queryExpr)
	cmd.SetContext(ctx)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Execute runs the root command and prints any error once to stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}
