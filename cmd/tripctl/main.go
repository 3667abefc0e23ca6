package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tripwise/internal/adapters/observability"
	"tripwise/internal/app"
	"tripwise/internal/catalog"
	"tripwise/internal/shared"
)

// env carries what every subcommand needs; filled in by PersistentPreRunE.
type env struct {
	cfg shared.Config
	cat *catalog.Catalog
	q   *app.QueryService
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Inspect the trip catalog and manage saved trip setups",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.cfg = shared.Load()
			log.Logger = observability.NewLoggerTo(e.cfg.AppEnv, cmd.ErrOrStderr())
			e.cat = catalog.Default()
			if cmd.Name() == "validate" {
				return nil
			}
			q, err := app.NewQueryService(e.cat)
			if err != nil {
				return fmt.Errorf("build trip plans: %w", err)
			}
			e.q = q
			return nil
		},
	}
	root.AddCommand(
		newValidateCmd(e),
		newDestinationsCmd(e),
		newItinerariesCmd(e),
		newTipsCmd(e),
		newPlansCmd(e),
		newConfidenceCmd(e),
		newSummaryCmd(e),
		newSetupCmd(e),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
