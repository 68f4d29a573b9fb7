package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"comparables/internal/exporter"
	"comparables/internal/grouping"
	"comparables/internal/logger"
	"comparables/internal/model"
	"comparables/internal/session"
	"comparables/internal/ui"

	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		group   int
		formats string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Parse the stored replies and export the reports",
		Long: `Parses the stored reply of every group and exports one report per group
plus the combined report. Groups whose reply does not parse are reported
and left out of the combined report.

With --input only the groups of that spreadsheet are considered.

Formats: excel, html, json.

Example:
  comparables report --format excel,html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var only []int
			if cmd.Flags().Changed("group") {
				idx, err := groupIndex(group)
				if err != nil {
					return err
				}
				only = []int{idx}
			}

			pipeline := a.newPipeline(ui.PhaseLoading, ui.PhaseParsing, ui.PhaseExporting)
			defer pipeline.Finish()

			proc := a.newProcessor()
			indexes, err := a.pendingGroups(pipeline, proc, only)
			if err != nil {
				return err
			}

			failures := a.parseStored(pipeline, proc, indexes, only != nil)

			reports := proc.Session.Reports()
			if len(reports) == 0 && len(failures) == 0 {
				logger.Warn("No hay respuestas guardadas")
				return nil
			}

			if !a.quiet {
				for _, r := range reports {
					fmt.Fprintln(a.out, ui.RenderReport(r))
				}
			}

			if len(reports) == 0 {
				return fmt.Errorf("no reply could be processed (%d failed)", len(failures))
			}

			return a.export(pipeline, proc.Session, splitFormats(formats))
		},
	}

	cmd.Flags().IntVarP(&group, "group", "g", 0, "Only this group (1-based)")
	cmd.Flags().StringVar(&formats, "format", "excel", "Comma-separated output formats (excel,html,json)")

	return cmd
}

// newPipeline builds a progress pipeline on stderr, silent with --quiet
func (a *app) newPipeline(phases ...ui.Phase) *ui.Pipeline {
	return ui.NewPipeline(phases, os.Stderr, !a.quiet)
}

// pendingGroups lists the groups whose stored reply must be parsed. With
// --input the groups must exist in that spreadsheet and stored replies of
// groups beyond it are skipped.
func (a *app) pendingGroups(pipeline *ui.Pipeline, proc *session.Processor, only []int) ([]int, error) {
	bar := pipeline.NextPhase(1)

	limit := 0
	if a.input != "" {
		bar.SetTotal(2)
		bar.Describe(filepath.Base(a.input))
		_, groups, err := a.loadGroups()
		if err != nil {
			return nil, err
		}
		for _, idx := range only {
			if _, err := grouping.Select(groups, idx); err != nil {
				return nil, err
			}
		}
		limit = len(groups)
		bar.Increment()
	}

	if only != nil {
		bar.Increment()
		return only, nil
	}

	bar.Describe("respuestas guardadas")
	stored, err := proc.Store.Indexes()
	if err != nil {
		return nil, err
	}
	var indexes []int
	for _, i := range stored {
		if limit > 0 && i >= limit {
			continue
		}
		indexes = append(indexes, i)
	}
	bar.Increment()
	return indexes, nil
}

// parseStored restores the given groups into the processor's session and
// reports every group that failed. With warnMissing a group without a
// stored reply is reported too.
func (a *app) parseStored(pipeline *ui.Pipeline, proc *session.Processor, indexes []int, warnMissing bool) map[int]error {
	bar := pipeline.NextPhase(len(indexes))

	failures := make(map[int]error)
	for _, i := range indexes {
		bar.Describe(model.GroupLabel(i))
		report, err := proc.Restore(i)
		if err != nil {
			failures[i] = err
		} else if report == nil && warnMissing {
			logger.Warn("%s: sin respuesta guardada", model.GroupLabel(i))
		}
		bar.Increment()
	}
	pipeline.Finish()

	logFailures(failures)
	return failures
}

// export runs every requested exporter over the session reports
func (a *app) export(pipeline *ui.Pipeline, s *session.Session, formats []string) error {
	exporters := exporter.GetExporters(formats, s.ID)
	if len(exporters) == 0 {
		return fmt.Errorf("no valid output format in %v (use excel, html or json)", formats)
	}

	bar := pipeline.NextPhase(len(exporters))

	var exportErrors []error
	for _, exp := range exporters {
		if err := exp.Export(s.Reports(), a.cfg); err != nil {
			logger.Error("[%s] %v", pipeline.Current(), err)
			exportErrors = append(exportErrors, err)
		}
		bar.Increment()
	}
	pipeline.Finish()

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", len(exportErrors))
	}

	pipeline.PrintSummary(fmt.Sprintf("✅ %d grupo(s) exportados en [%s]", s.Len(), a.cfg.Output.Dir))
	return nil
}

// logFailures reports the groups whose reply did not parse, in group order
func logFailures(failures map[int]error) {
	failed := make([]int, 0, len(failures))
	for i := range failures {
		failed = append(failed, i)
	}
	sort.Ints(failed)
	for _, i := range failed {
		logger.Error("%s: error al procesar la respuesta: %v", model.GroupLabel(i), failures[i])
	}
	if len(failed) > 0 {
		logger.Info("Detalles en %s", logger.GetLogFilePath())
	}
}
