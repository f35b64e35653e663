package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/llm"
	"github.com/matemagica/matemagica/internal/store"
	"github.com/matemagica/matemagica/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

// withRepo runs fn against the event log.
func withRepo(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	s, err := e.openStore()
	if err != nil {
		return err
	}
	return fn(s.EventRepo())
}

func rule(w io.Writer, n int) {
	_, _ = lipgloss.Fprintln(w, theme.Rule.Render(strings.Repeat("─", n)))
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		return withRepo(cmd, func(repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(w, "No LLM events found.")
				return nil
			}

			fmt.Fprintf(w, "%-5s  %-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			rule(w, 100)

			for _, e := range events {
				ok := theme.Answer.Render("✓")
				if !e.Success {
					ok = theme.Failure.Render("✗")
				}
				_, _ = lipgloss.Fprintf(w, "%-5d  %-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(e.Purpose, 12),
					truncate(e.Model, 28),
					e.InputTokens,
					e.OutputTokens,
					e.LatencyMs,
					ok,
				)
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withRepo(cmd, func(repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID:        %d\n", e.ID)
			fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
			fmt.Fprintf(w, "Model:     %s\n", e.Model)
			fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
			fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
			fmt.Fprintf(w, "Success:   %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
			}

			for _, section := range []struct{ title, body string }{
				{"REQUEST", e.RequestBody},
				{"RESPONSE", e.ResponseBody},
			} {
				fmt.Fprintln(w)
				rule(w, 60)
				_, _ = lipgloss.Fprintln(w, theme.Title.Render(section.title))
				rule(w, 60)
				if section.body != "" {
					fmt.Fprintln(w, section.body)
				} else {
					_, _ = lipgloss.Fprintln(w, theme.Hint.Render("(not captured)"))
				}
			}
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(repo store.EventRepo) error {
			ctx := cmd.Context()
			stats, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(stats) == 0 {
				fmt.Fprintln(w, "No LLM usage recorded yet.")
				return nil
			}

			_, _ = lipgloss.Fprintln(w, theme.Title.Render("Usage by Purpose"))
			rule(w, 80)
			fmt.Fprintf(w, "%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
				"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
			rule(w, 80)

			var totalCalls, totalFailed, totalIn, totalOut int
			for _, st := range stats {
				fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d  %8d\n",
					st.Purpose, st.Calls, st.Failures, st.InputTokens, st.OutputTokens,
					st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
				totalCalls += st.Calls
				totalFailed += st.Failures
				totalIn += st.InputTokens
				totalOut += st.OutputTokens
			}

			rule(w, 80)
			fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d\n",
				"TOTAL", totalCalls, totalFailed, totalIn, totalOut, totalIn+totalOut)

			modelUsage, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			if len(modelUsage) > 0 {
				writeCostTable(w, modelUsage)
			}
			return nil
		})
	},
}

func writeCostTable(w io.Writer, usage []store.ModelUsage) {
	fmt.Fprintln(w)
	_, _ = lipgloss.Fprintln(w, theme.Title.Render("Estimated Cost (USD)"))
	rule(w, 72)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	rule(w, 72)

	var totalCost float64
	var unknownModels []string
	for _, mu := range usage {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknownModels = append(unknownModels, mu.Model)
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	rule(w, 72)
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete LLM events older than a given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetDuration("older-than")
		if age <= 0 {
			return fmt.Errorf("--older-than must be positive, got %s", age)
		}

		return withRepo(cmd, func(repo store.EventRepo) error {
			n, err := repo.PruneLLMEvents(cmd.Context(), time.Now().Add(-age))
			if err != nil {
				return fmt.Errorf("prune events: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d event(s).\n", n)
			return nil
		})
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. exercise-gen)")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this age (e.g. 24h)")
	llmPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete events older than this age")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmPruneCmd)
}
