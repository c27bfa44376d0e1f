package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/logging"
	"splice/internal/runs"
	"splice/internal/services"
	"splice/internal/timeline"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var scriptType string

	cmd := &cobra.Command{
		Use:   "generate <project> <identifier>",
		Short: "Assemble and persist the timeline for a project identifier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			run, err := ctx.runContext(args[0], args[1], scriptType)
			if err != nil {
				return err
			}

			logger := ctx.logger().With(
				logging.String(logging.FieldIdentifier, run.Identifier),
				logging.String("script_type", string(run.ScriptType)),
			)

			lock, err := runs.AcquireProjectLock(cfg.Paths.LogDir, run.Identifier)
			if err != nil {
				return err
			}
			defer func() {
				if releaseErr := lock.Release(); releaseErr != nil {
					logger.Warn("failed to release project lock", logging.Error(releaseErr))
				}
			}()

			store, err := runs.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer store.Close()

			ledger, err := store.Begin(cmd.Context(), run.Project, run.Identifier, string(run.ScriptType))
			if err != nil {
				return err
			}

			execCtx := services.WithRunID(cmd.Context(), ledger.ID)
			execCtx = services.WithIdentifier(execCtx, run.Identifier)

			result, err := timeline.NewAssembler(cfg, logger).Assemble(execCtx, run)
			if err != nil {
				if failErr := store.Fail(cmd.Context(), ledger.ID, err.Error()); failErr != nil {
					logger.Warn("failed to record run failure", logging.Error(failErr))
				}
				return err
			}

			outcome := runs.Outcome{
				TimingSource:   result.TimingSource.String(),
				DurationSource: string(result.DurationSource),
				TotalDuration:  result.Document.TotalDuration,
				Entries:        len(result.Document.Timeline),
				Dropped:        result.Dropped,
				TimelinePath:   result.Path,
			}
			if err := store.Complete(cmd.Context(), ledger.ID, outcome); err != nil {
				logger.Warn("failed to record run completion", logging.Error(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Timeline written to %s\n", result.Path)
			fmt.Fprintf(out, "Entries: %d (dropped %d)\n", len(result.Document.Timeline), result.Dropped)
			fmt.Fprintf(out, "Timing source: %s\n", result.TimingSource)
			fmt.Fprintf(out, "Total duration: %.2fs (%s)\n", result.Document.TotalDuration, result.DurationSource)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scriptType, "script", "s", "conversation", "Script type (conversation, dialogue, intro, ending, or Korean aliases)")
	return cmd
}
