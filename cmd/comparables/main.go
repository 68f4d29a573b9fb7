package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"comparables/internal/config"
	"comparables/internal/grouping"
	"comparables/internal/loader"
	"comparables/internal/logger"
	"comparables/internal/model"
	"comparables/internal/session"
	"comparables/internal/store"

	"github.com/spf13/cobra"
)

const (
	appName    = "Procesador de Comparables"
	appVersion = "1.0.0"
)

// app carries the flags and the resources opened for one command run
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	size       int
	input      string
	outputDir  string

	cfg   *config.Config
	store store.ResponseStore
	in    io.Reader
	out   io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "comparables",
		Short: appName + " - prompts por grupo y reportes de comparables",
		Long: `Reads a spreadsheet with the columns Activo, Descripción and Marca,
splits its rows into groups and writes one prompt per group. The replies
pasted back for each group are stored, parsed and exported as Excel, HTML
or JSON reports.

Group numbers on the command line are the display numbers (Grupo 1 = 1).`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	if a.in != nil {
		root.SetIn(a.in)
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "Path to configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Hide progress bars, banner and previews")
	root.PersistentFlags().IntVarP(&a.size, "size", "n", 0, "Rows per group (overrides grouping.size)")
	root.PersistentFlags().StringVarP(&a.input, "input", "i", "", "Spreadsheet with Activo, Descripción and Marca columns (.xlsx or .csv)")
	root.PersistentFlags().StringVar(&a.outputDir, "output", "", "Override output directory from config")

	root.AddCommand(
		newPromptsCmd(a),
		newSaveCmd(a),
		newShowCmd(a),
		newReportCmd(a),
		newStatusCmd(a),
		newResetCmd(a),
		newSessionCmd(a),
	)

	return root
}

// execute runs the command line in args and releases the store and the
// log file whatever the outcome
func execute(in io.Reader, out io.Writer, args []string) error {
	a := &app{in: in, out: out}
	defer a.teardown()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.Execute()
}

func main() {
	if err := execute(os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides, starts the logger
// and opens the response store
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("size") {
		cfg.Grouping.Size = a.size
	}
	if a.outputDir != "" {
		abs, err := filepath.Abs(a.outputDir)
		if err != nil {
			return err
		}
		cfg.Output.Dir = abs
		if err := cfg.EnsureOutputDir(); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(a.out, cfg.LogPath(), a.verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !a.quiet {
		printBanner()
	}
	if a.verbose {
		cfg.Print()
	}

	st, err := store.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open response store: %w", err)
	}

	a.cfg = cfg
	a.store = st
	logger.Debug("Storage: %s (%s)", cfg.Storage.Backend, cfg.Storage.Dir)
	return nil
}

func (a *app) teardown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Warn("Failed to close response store: %v", err)
		}
		a.store = nil
	}
	logger.Close()
}

func printBanner() {
	logger.InfoClean("%s", strings.Repeat("=", 50))
	logger.InfoClean("  %s v%s", appName, appVersion)
	logger.InfoClean("%s", strings.Repeat("=", 50))
}

// loadGroups reads the input spreadsheet and partitions it
func (a *app) loadGroups() ([]model.Row, []model.Group, error) {
	if a.input == "" {
		return nil, nil, fmt.Errorf("an input spreadsheet is required (--input)")
	}

	rows, err := loader.Load(a.input, loader.Options{
		Sheet:        a.cfg.Input.Sheet,
		MissingValue: a.cfg.Input.MissingValue,
	})
	if err != nil {
		return nil, nil, err
	}

	groups, err := grouping.Partition(rows, a.cfg.Grouping.Size)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("%d fila(s) leídas de %s", len(rows), filepath.Base(a.input))
	logger.Info("Se generarán %d grupo(s).", len(groups))
	return rows, groups, nil
}

func (a *app) newProcessor() *session.Processor {
	s := session.New()
	logger.Debug("Session %s started", s.ID)
	return session.NewProcessor(a.store, s)
}

// groupIndex converts a 1-based display number into a zero-based index
func groupIndex(number int) (int, error) {
	if number < 1 {
		return 0, fmt.Errorf("group number must be 1 or greater, got %d", number)
	}
	return number - 1, nil
}

func splitFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
