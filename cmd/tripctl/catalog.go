package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"tripwise/internal/catalog"
	"tripwise/internal/domain"
)

func newValidateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check catalog invariants (one itinerary and one verification per destination, score ranges, day order)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catalog.Validate(e.cat); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d destinations, %d itineraries, %d tips, %d verification records\n",
				len(e.cat.Destinations()), len(e.cat.Itineraries()), len(e.cat.Tips()), len(e.cat.Sources()))
			return nil
		},
	}
}

func newDestinationsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "destinations [query]",
		Short: "List destinations whose city or country contains query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var q string
			if len(args) == 1 {
				q = args[0]
			}
			return printJSON(cmd.OutOrStdout(), e.q.FilterDestinations(q))
		},
	}
}

// itineraryFlags binds the shared --destination/--max-budget/--tag filters.
func itineraryFlags(cmd *cobra.Command) func() (domain.ItineraryQuery, error) {
	var dest, tag string
	var maxBudget float64
	cmd.Flags().StringVar(&dest, "destination", "", "destination id")
	cmd.Flags().Float64Var(&maxBudget, "max-budget", 0, "maximum estimated budget")
	cmd.Flags().StringVar(&tag, "tag", "", "tag (case-insensitive)")
	return func() (domain.ItineraryQuery, error) {
		var q domain.ItineraryQuery
		if dest != "" {
			q.DestinationID = &dest
		}
		if cmd.Flags().Changed("max-budget") {
			if maxBudget < 0 || math.IsNaN(maxBudget) {
				return q, &domain.ValidationError{Field: "max-budget", Reason: "must be a non-negative number"}
			}
			q.MaxBudget = &maxBudget
		}
		if tag != "" {
			q.Tag = &tag
		}
		return q, nil
	}
}

func newItinerariesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "itineraries",
		Short: "List recommended itineraries",
		Args:  cobra.NoArgs,
	}
	query := itineraryFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		q, err := query()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), e.q.FilterItineraries(q))
	}
	return cmd
}

func newPlansCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List trip plans (destination + itinerary + tips + verification)",
		Args:  cobra.NoArgs,
	}
	query := itineraryFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		q, err := query()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), e.q.FilterTripPlans(q))
	}
	return cmd
}

func newTipsCmd(e *env) *cobra.Command {
	var platform string
	cmd := &cobra.Command{
		Use:   "tips",
		Short: "List influencer tips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if platform != "" {
				if _, ok := domain.ParsePlatform(platform); !ok {
					return fmt.Errorf("unknown platform %q", platform)
				}
			}
			return printJSON(cmd.OutOrStdout(), e.q.FilterTips(platform))
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "", "instagram|tiktok|youtube|blog")
	return cmd
}

func newConfidenceCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "confidence <destination-id>",
		Short: "Print a destination's confidence score (0 when unknown)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), e.q.GetConfidenceScore(args[0]))
			return nil
		},
	}
}

func newSummaryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the verified-destinations summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), e.q.BuildVerifiedContextSummary())
			return nil
		},
	}
}
