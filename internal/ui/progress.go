package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Phase represents a stage of report processing
type Phase string

const (
	PhaseLoading   Phase = "Loading"
	PhaseParsing   Phase = "Parsing"
	PhaseExporting Phase = "Exporting"
)

// ProgressBar wraps the progressbar library with our custom styling
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase Phase
}

// NewProgressBar creates a styled bar for one phase writing to output
func NewProgressBar(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
	)
	return &ProgressBar{bar: bar, phase: phase}
}

func silentBar(phase Phase) *ProgressBar {
	return &ProgressBar{
		bar:   progressbar.NewOptions(-1, progressbar.OptionSetWriter(io.Discard)),
		phase: phase,
	}
}

// Increment advances the bar by one step
func (pb *ProgressBar) Increment() error {
	return pb.bar.Add(1)
}

// SetTotal updates the number of steps
func (pb *ProgressBar) SetTotal(total int) {
	pb.bar.ChangeMax(total)
}

// Describe shows what the current step is working on ("Grupo 2")
func (pb *ProgressBar) Describe(step string) {
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, step))
}

// Finish completes the bar
func (pb *ProgressBar) Finish() error {
	return pb.bar.Finish()
}

// Pipeline walks through a fixed list of phases, one bar each
type Pipeline struct {
	phases   []Phase
	current  int
	active   *ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipeline creates a pipeline writing to output. When enabled is false
// every bar is silent.
func NewPipeline(phases []Phase, output io.Writer, enabled bool) *Pipeline {
	return &Pipeline{
		phases:   phases,
		current:  -1,
		disabled: !enabled,
		output:   output,
	}
}

// NextPhase finishes the running bar and starts the next phase.
// Past the last phase it returns a silent bar so callers never get nil.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	p.Finish()

	p.current++
	if p.current >= len(p.phases) {
		p.active = silentBar("done")
		return p.active
	}

	phase := p.phases[p.current]
	if p.disabled {
		p.active = silentBar(phase)
	} else {
		p.active = NewProgressBar(phase, total, p.output)
	}
	return p.active
}

// Current returns the running phase, or "" before the first phase
func (p *Pipeline) Current() Phase {
	if p.current < 0 || p.current >= len(p.phases) {
		return ""
	}
	return p.phases[p.current]
}

// Finish completes the running bar
func (p *Pipeline) Finish() {
	if p.active != nil {
		p.active.Finish()
		p.active = nil
	}
}

// PrintSummary prints a closing line unless the pipeline is silent
func (p *Pipeline) PrintSummary(message string) {
	if !p.disabled {
		fmt.Fprintln(p.output, message)
	}
}
