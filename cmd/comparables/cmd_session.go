package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"comparables/internal/grouping"
	"comparables/internal/logger"
	"comparables/internal/model"
	"comparables/internal/prompt"
	"comparables/internal/reply"
	"comparables/internal/session"
	"comparables/internal/ui"
	"comparables/internal/utils"

	"github.com/spf13/cobra"
)

// endOfReply closes a multi-line paste
const endOfReply = "END"

const sessionHelp = `Comandos:
  groups           lista los grupos y su estado
  prompt N         muestra el prompt del grupo N
  paste N          pega la respuesta del grupo N (terminar con una línea END)
  show N           muestra la respuesta guardada del grupo N
  size K           cambia el tamaño de grupo
  export [fmt,..]  exporta los reportes (excel, html, json)
  reset            elimina todas las respuestas guardadas
  help             muestra esta ayuda
  quit             sale`

func newSessionCmd(a *app) *cobra.Command {
	var formats string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Interactive session over one input spreadsheet",
		Long: `Starts a line-oriented session: load the input once, read prompts,
paste replies and export, with one in-memory set of parsed reports.

` + sessionHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, groups, err := a.loadGroups()
			if err != nil {
				return err
			}

			r := &repl{
				app:     a,
				proc:    a.newProcessor(),
				rows:    rows,
				groups:  groups,
				formats: splitFormats(formats),
				in:      bufio.NewScanner(cmd.InOrStdin()),
			}
			r.in.Buffer(make([]byte, 64*1024), 4*1024*1024)
			return r.run()
		},
	}

	cmd.Flags().StringVar(&formats, "format", "excel", "Default export formats (excel,html,json)")

	return cmd
}

type repl struct {
	app     *app
	proc    *session.Processor
	rows    []model.Row
	groups  []model.Group
	formats []string
	in      *bufio.Scanner
}

func (r *repl) out() io.Writer {
	return r.app.out
}

func (r *repl) run() error {
	if !r.app.quiet {
		fmt.Fprintln(r.out(), ui.RenderCombinedPreview(r.rows, previewRows))
	}
	r.restore()
	fmt.Fprintln(r.out(), sessionHelp)

	for {
		fmt.Fprint(r.out(), "> ")
		if !r.in.Scan() {
			fmt.Fprintln(r.out())
			return r.in.Err()
		}

		fields := strings.Fields(r.in.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := r.dispatch(strings.ToLower(fields[0]), fields[1:])
		if err != nil {
			logger.Error("%v", err)
		}
		if quit {
			return nil
		}
	}
}

func (r *repl) dispatch(command string, args []string) (bool, error) {
	switch command {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(r.out(), sessionHelp)
		return false, nil
	case "groups":
		return false, r.listGroups()
	case "prompt":
		g, err := r.groupArg(args)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.out(), "### %s\n\n%s\n", g.Label(), prompt.Render(g))
		return false, nil
	case "paste":
		g, err := r.groupArg(args)
		if err != nil {
			return false, err
		}
		return false, r.paste(g)
	case "show":
		g, err := r.groupArg(args)
		if err != nil {
			return false, err
		}
		text, err := r.proc.Store.Load(g.Index)
		if err != nil {
			return false, err
		}
		if text == "" {
			logger.Info("%s: sin respuesta guardada", g.Label())
			return false, nil
		}
		fmt.Fprintln(r.out(), text)
		return false, nil
	case "size":
		return false, r.resize(args)
	case "export":
		formats := r.formats
		if len(args) > 0 {
			formats = splitFormats(strings.Join(args, ","))
		}
		if r.proc.Session.Len() == 0 {
			return false, fmt.Errorf("no hay reportes procesados para exportar")
		}
		return false, r.app.export(r.app.newPipeline(ui.PhaseExporting), r.proc.Session, formats)
	case "reset":
		if err := r.proc.Reset(); err != nil {
			return false, err
		}
		logger.Info("🗑️  Se eliminaron todas las respuestas guardadas")
		return false, nil
	default:
		return false, fmt.Errorf("comando desconocido %q (escribe help)", command)
	}
}

// groupArg parses the 1-based group number argument
func (r *repl) groupArg(args []string) (model.Group, error) {
	if len(args) != 1 {
		return model.Group{}, fmt.Errorf("se espera un número de grupo")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return model.Group{}, fmt.Errorf("número de grupo inválido %q", args[0])
	}
	idx, err := groupIndex(n)
	if err != nil {
		return model.Group{}, err
	}
	return grouping.Select(r.groups, idx)
}

// paste reads lines until END and submits them as the group's reply
func (r *repl) paste(g model.Group) error {
	fmt.Fprintf(r.out(), "Pega la respuesta de %s y termina con una línea %s\n", g.Label(), endOfReply)

	var lines []string
	for r.in.Scan() {
		line := r.in.Text()
		if strings.TrimSpace(line) == endOfReply {
			break
		}
		lines = append(lines, line)
	}
	if err := r.in.Err(); err != nil {
		return err
	}

	text, err := utils.DecodeText([]byte(strings.Join(lines, "\n")))
	if err != nil {
		return err
	}

	report, err := r.proc.Submit(g.Index, text)
	var perr *reply.ParseError
	switch {
	case errors.As(err, &perr):
		return fmt.Errorf("%s: respuesta guardada, pero no se pudo procesar: %w", g.Label(), err)
	case err != nil:
		return err
	case report == nil:
		logger.Warn("%s: texto vacío, no se guardó nada", g.Label())
		return nil
	}

	fmt.Fprintln(r.out(), ui.RenderReport(report))
	return nil
}

func (r *repl) listGroups() error {
	indexes, err := r.proc.Store.Indexes()
	if err != nil {
		return err
	}
	stored := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		stored[i] = true
	}

	entries := make([]ui.GroupStatus, 0, len(r.groups))
	for _, g := range r.groups {
		entries = append(entries, ui.GroupStatus{Label: g.Label(), Rows: len(g.Rows), Stored: stored[g.Index]})
	}
	fmt.Fprintln(r.out(), ui.RenderStatus(entries))
	fmt.Fprintf(r.out(), "%d grupo(s) procesados en esta sesión\n", r.proc.Session.Len())
	return nil
}

// resize partitions the rows again and rebuilds the session reports,
// since stored replies are keyed by group index
func (r *repl) resize(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("se espera un tamaño de grupo")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("tamaño inválido %q", args[0])
	}

	groups, err := grouping.Partition(r.rows, size)
	if err != nil {
		return err
	}

	r.groups = groups
	r.app.cfg.Grouping.Size = size
	r.proc.Session.Reset()
	logger.Info("Se generarán %d grupo(s).", len(groups))
	r.restore()
	return nil
}

// restore parses the stored replies of the current groups into the session
func (r *repl) restore() {
	failures, err := r.proc.RestoreAll(len(r.groups))
	if err != nil {
		logger.Error("%v", err)
		return
	}

	logFailures(failures)

	if n := r.proc.Session.Len(); n > 0 {
		logger.Info("%d grupo(s) con respuesta guardada", n)
	}
}
