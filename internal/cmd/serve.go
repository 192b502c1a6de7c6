package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/scape/internal/app"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bookmark jump service",
		Long: `Run the HTTP service. It is configured through SCAPE_* environment
variables; SCAPE_BOOKMARK_FILE and SCAPE_FALLBACK_URL are required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New()
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
}
