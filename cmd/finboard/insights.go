package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/finance"
	"finboard/internal/ui"
)

func insightsCmd(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "List insights by priority and impact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := finance.ParseInsightFilter(filter)
			if err != nil {
				return err
			}
			svc, err := a.dashboard(cmd.Context(), f)
			if err != nil {
				return err
			}
			insights, err := svc.Insights(cmd.Context(), f)
			if err != nil {
				return err
			}
			printInsights(cmd.OutOrStdout(), insights)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "which insights to show (all, high, action-required)")
	return cmd
}

func printInsights(w io.Writer, insights []core.Insight) {
	if len(insights) == 0 {
		fmt.Fprintln(w, "  No insights.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, in := range insights {
		action := ""
		if in.ActionRequired {
			action = "action required"
		}
		fmt.Fprintf(tw, "  %s\t%d/10\t%s\t%s\n", ui.Priority(in.Priority), in.Impact, in.Title, action)
	}
	tw.Flush()
}
