package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"comparables/internal/grouping"
	"comparables/internal/logger"
	"comparables/internal/model"
	"comparables/internal/reply"
	"comparables/internal/ui"
	"comparables/internal/utils"

	"github.com/spf13/cobra"
)

func newSaveCmd(a *app) *cobra.Command {
	var (
		group int
		file  string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store the reply pasted for a group",
		Long: `Stores the reply text for one group, replacing any earlier reply, and
checks that it parses. The text is read from --file, or from stdin.

A reply that is not valid JSON is still stored so it can be fixed later;
the parse error is reported. Blank text is ignored.

Example:
  comparables save --group 2 --file respuesta.json
  pbpaste | comparables save -g 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := groupIndex(group)
			if err != nil {
				return err
			}

			// with an input at hand the group must exist
			if a.input != "" {
				_, groups, err := a.loadGroups()
				if err != nil {
					return err
				}
				if _, err := grouping.Select(groups, idx); err != nil {
					return err
				}
			}

			text, err := readReply(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			proc := a.newProcessor()
			report, err := proc.Submit(idx, text)
			var perr *reply.ParseError
			switch {
			case errors.As(err, &perr):
				logger.Error("%s: respuesta guardada, pero no se pudo procesar: %v", model.GroupLabel(idx), err)
				return nil
			case err != nil:
				return err
			case report == nil:
				logger.Warn("%s: texto vacío, no se guardó nada", model.GroupLabel(idx))
				return nil
			}

			logger.Info("✅ %s: respuesta guardada (%d fila(s))", report.Label(), len(report.Rows))
			if !a.quiet {
				fmt.Fprintln(a.out, ui.RenderReport(report))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&group, "group", "g", 0, "Group number (1-based)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the reply from this file instead of stdin")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

// readReply returns the reply as UTF-8. Input that is not valid UTF-8 is
// read as Windows-1252.
func readReply(stdin io.Reader, file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file != "" {
		if data, err = os.ReadFile(file); err != nil {
			return "", fmt.Errorf("failed to read reply file: %w", err)
		}
	} else if data, err = io.ReadAll(stdin); err != nil {
		return "", fmt.Errorf("failed to read reply from stdin: %w", err)
	}

	text, err := utils.DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode reply: %w", err)
	}
	return text, nil
}

func newShowCmd(a *app) *cobra.Command {
	var group int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored reply of a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := groupIndex(group)
			if err != nil {
				return err
			}

			text, err := a.store.Load(idx)
			if err != nil {
				return err
			}
			if text == "" {
				logger.Info("%s: sin respuesta guardada", model.GroupLabel(idx))
				return nil
			}

			fmt.Fprintln(a.out, text)
			return nil
		},
	}

	cmd.Flags().IntVarP(&group, "group", "g", 0, "Group number (1-based)")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List the groups of the input and which have a stored reply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, groups, err := a.loadGroups()
			if err != nil {
				return err
			}

			indexes, err := a.store.Indexes()
			if err != nil {
				return err
			}
			stored := make(map[int]bool, len(indexes))
			for _, i := range indexes {
				stored[i] = true
			}

			entries := make([]ui.GroupStatus, 0, len(groups))
			for _, g := range groups {
				entries = append(entries, ui.GroupStatus{
					Label:  g.Label(),
					Rows:   len(g.Rows),
					Stored: stored[g.Index],
				})
			}

			fmt.Fprintln(a.out, ui.RenderStatus(entries))
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored reply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.newProcessor().Reset(); err != nil {
				return err
			}
			logger.Info("🗑️  Se eliminaron todas las respuestas guardadas")
			return nil
		},
	}
}
