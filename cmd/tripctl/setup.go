package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tripwise/internal/app"
	"tripwise/internal/bootstrap"
	"tripwise/internal/domain"
)

func newSetupCmd(e *env) *cobra.Command {
	var session string
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Show, change or clear a session's saved trip setup",
	}
	cmd.PersistentFlags().StringVar(&session, "session", "", "session id (required)")
	_ = cmd.MarkPersistentFlagRequired("session")

	withService := func(run func(ctx context.Context, svc *app.TripSetupService) error) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			store, closeStore, err := bootstrap.OpenStorage(ctx, e.cfg)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer closeStore()
			return run(ctx, app.NewTripSetupService(store, e.cfg.TripSetupTTL))
		}
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved trip setup (defaults when none)",
		Args:  cobra.NoArgs,
	}
	showCmd.RunE = withService(func(ctx context.Context, svc *app.TripSetupService) error {
		return printJSON(showCmd.OutOrStdout(), svc.Load(ctx, session))
	})

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update fields of the saved trip setup",
		Args:  cobra.NoArgs,
	}
	var (
		dest, from, to, budget, currency, location string
		travelers                                  int
		nearMe                                     bool
	)
	setCmd.Flags().StringVar(&dest, "destination", "", "destination")
	setCmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD")
	setCmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD")
	setCmd.Flags().IntVar(&travelers, "travelers", 1, "number of travelers")
	setCmd.Flags().StringVar(&budget, "budget", "", "budget amount")
	setCmd.Flags().StringVar(&currency, "currency", "", "currency code")
	setCmd.Flags().BoolVar(&nearMe, "near-me", false, "search near the user's location")
	setCmd.Flags().StringVar(&location, "location", "", "user location")
	setCmd.RunE = withService(func(ctx context.Context, svc *app.TripSetupService) error {
		f := setCmd.Flags()
		var p domain.TripSetupPatch
		if f.Changed("destination") {
			p.Destination = &dest
		}
		if f.Changed("from") {
			p.FromDate = &from
		}
		if f.Changed("to") {
			p.ToDate = &to
		}
		if f.Changed("travelers") {
			p.Travelers = &travelers
		}
		if f.Changed("budget") {
			p.Budget = &budget
		}
		if f.Changed("currency") {
			p.Currency = &currency
		}
		if f.Changed("near-me") {
			p.UseNearMe = &nearMe
		}
		if f.Changed("location") {
			p.UserLocation = &location
		}
		ts, err := svc.Update(ctx, session, p)
		if err != nil {
			return err
		}
		return printJSON(setCmd.OutOrStdout(), ts)
	})

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the saved trip setup",
		Args:  cobra.NoArgs,
	}
	clearCmd.RunE = withService(func(ctx context.Context, svc *app.TripSetupService) error {
		return printJSON(clearCmd.OutOrStdout(), svc.Clear(ctx, session))
	})

	cmd.AddCommand(showCmd, setCmd, clearCmd)
	return cmd
}
