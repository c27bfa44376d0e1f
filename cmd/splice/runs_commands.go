package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/runs"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRuns(cmd, ctx, 20)
		},
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsHealthCommand(ctx))
	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRuns(cmd, ctx, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func listRuns(cmd *cobra.Command, ctx *commandContext, limit int) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := runs.Open(cfg)
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	defer store.Close()

	listed, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(listed) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}

	rows := make([][]string, 0, len(listed))
	for _, run := range listed {
		detail := run.TimingSource
		if run.Status == runs.StatusFailed {
			detail = run.ErrorMessage
		}
		rows = append(rows, []string{
			shortID(run.ID),
			run.Identifier,
			run.ScriptType,
			string(run.Status),
			strconv.Itoa(run.Entries),
			fmt.Sprintf("%.2fs", run.TotalDuration),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Identifier", "Script", "Status", "Entries", "Duration", "Started", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	))
	return nil
}

func newRunsHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check run database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runs.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer store.Close()

			health := store.Health(cmd.Context())
			summary, summaryErr := store.Summary(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", health.DBPath)
			fmt.Fprintf(out, "Exists: %s  Readable: %s  Integrity: %s\n",
				yesNo(health.DatabaseExists), yesNo(health.DatabaseReadable), yesNo(health.IntegrityCheck))
			fmt.Fprintf(out, "Schema version: %s\n", health.SchemaVersion)
			if health.Error != "" {
				fmt.Fprintf(out, "Error: %s\n", health.Error)
			}
			if summaryErr == nil {
				fmt.Fprintf(out, "Runs: %d total, %d running, %d completed, %d failed\n",
					summary.Total, summary.Running, summary.Completed, summary.Failed)
			}
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
