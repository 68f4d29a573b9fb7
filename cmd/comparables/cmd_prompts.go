package main

import (
	"fmt"

	"comparables/internal/exporter"
	"comparables/internal/grouping"
	"comparables/internal/logger"
	"comparables/internal/model"
	"comparables/internal/prompt"
	"comparables/internal/ui"

	"github.com/spf13/cobra"
)

const previewRows = 10

func newPromptsCmd(a *app) *cobra.Command {
	var (
		group    int
		formats  string
		printOut bool
	)

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Write the prompt of every group (or one group)",
		Long: `Loads the input spreadsheet, shows a preview of the combined rows,
partitions them and writes one prompt per group.

Formats: txt ("Grupo N_Prompt.txt" per group) and docx (one Word document).

Example:
  comparables prompts -i activos.xlsx -n 5 --format txt,docx
  comparables prompts -i activos.xlsx --group 2 --print`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, groups, err := a.loadGroups()
			if err != nil {
				return err
			}

			if !a.quiet {
				fmt.Fprintln(a.out, ui.RenderCombinedPreview(rows, previewRows))
			}

			if cmd.Flags().Changed("group") {
				idx, err := groupIndex(group)
				if err != nil {
					return err
				}
				g, err := grouping.Select(groups, idx)
				if err != nil {
					return err
				}
				groups = []model.Group{g}
			}

			prompts := prompt.Build(groups)

			if printOut {
				for _, p := range prompts {
					fmt.Fprintf(a.out, "### %s\n\n%s\n\n", p.Label, p.Text)
				}
			}

			exporters := exporter.GetPromptExporters(splitFormats(formats))
			if len(exporters) == 0 && !printOut {
				return fmt.Errorf("no valid prompt format in %q (use txt or docx)", formats)
			}
			for _, exp := range exporters {
				if err := exp.ExportPrompts(prompts, a.cfg); err != nil {
					return fmt.Errorf("failed to export prompts: %w", err)
				}
			}

			logger.Info("✅ %d prompt(s) escritos en [%s]", len(prompts), a.cfg.Output.Dir)
			return nil
		},
	}

	cmd.Flags().IntVarP(&group, "group", "g", 0, "Only this group (1-based)")
	cmd.Flags().StringVar(&formats, "format", "txt", "Comma-separated prompt formats (txt,docx)")
	cmd.Flags().BoolVar(&printOut, "print", false, "Also print the prompts to the console")

	return cmd
}
