package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/project"
	"splice/internal/timeline"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var scriptType string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <project> <identifier>",
		Short: "Display a generated timeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := ctx.runContext(args[0], args[1], scriptType)
			if err != nil {
				return err
			}

			doc, err := timeline.Load(run.TimelineFile())
			if err != nil {
				return fmt.Errorf("no timeline for %s %s (%s): %w", run.Project, run.Identifier, run.ScriptType, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(doc)
			}

			fmt.Fprintf(out, "Project: %s  Identifier: %s  Script: %s\n", run.Project, run.Identifier, run.ScriptType)
			if pair, ok := project.ParsePair(run.Identifier); ok {
				fmt.Fprintf(out, "Languages: %s\n", pair.Describe())
			}
			fmt.Fprintf(out, "Resolution: %s\n", doc.Resolution)
			fmt.Fprintf(out, "Audio: %s\n", orNone(doc.FinalAudioPath))
			fmt.Fprintf(out, "Total duration: %.2fs\n\n", doc.TotalDuration)

			rows := make([][]string, 0, len(doc.Timeline))
			for _, entry := range doc.Timeline {
				rows = append(rows, []string{
					strconv.Itoa(entry.Sequence),
					entry.SceneType,
					entry.SceneID,
					formatSeconds(entry.StartTime),
					formatSeconds(entry.EndTime),
					formatSeconds(entry.Duration),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Seq", "Type", "Scene", "Start", "End", "Duration"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&scriptType, "script", "s", "conversation", "Script type of the timeline to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw timeline document")
	return cmd
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64) + "s"
}

func orNone(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}
