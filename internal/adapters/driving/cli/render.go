package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// reportHeader is the first line of a text report.
const reportHeader = "Non trivial strong connected components of the similarity graph:"

// progressRate caps how often the progress line is redrawn, per second.
const progressRate = 10

// palette holds the styles of the text report. A disabled palette prints
// text unchanged.
type palette struct {
	enabled bool
	header  lipgloss.Style
	brace   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{}
	}
	return palette{
		enabled: true,
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		brace:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

func (p palette) render(style lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return style.Render(text)
}

// renderer writes reports to stdout and progress to stderr.
type renderer struct {
	out     io.Writer
	errOut  io.Writer
	json    bool
	colors  palette
	showing bool // progress is drawn

	mu      sync.Mutex
	limiter *rate.Limiter
}

func newRenderer(cmd *cobra.Command, color, asJSON bool) *renderer {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	return &renderer{
		out:     out,
		errOut:  errOut,
		json:    asJSON,
		colors:  newPalette(color && isTerminal(out)),
		showing: !asJSON && isTerminal(errOut),
		limiter: rate.NewLimiter(rate.Limit(progressRate), 1),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progress draws the indexing counter in place. It is safe for concurrent use.
func (r *renderer) progress(p domain.Progress) {
	if !r.showing {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch p.Phase {
	case domain.PhaseIndexing:
		if !r.limiter.Allow() {
			return
		}
		fmt.Fprintf(r.errOut, "\rindexing files (%d done)", p.Done)
	case domain.PhaseIndexed:
		fmt.Fprintf(r.errOut, "\rindexing files (%d done)\nindexing done.\n", p.Done)
	}
}

// report prints one run's clusters.
func (r *renderer) report(report *domain.ClusterReport) error {
	if r.json {
		return r.reportJSON(report)
	}

	fmt.Fprintln(r.out, r.colors.render(r.colors.header, reportHeader))
	for _, c := range report.Clusters {
		fmt.Fprintln(r.out, r.colors.render(r.colors.brace, "{"))
		for _, label := range c.Labels() {
			fmt.Fprintf(r.out, "\t%s\n", r.colors.render(r.colors.label, label))
		}
		fmt.Fprintln(r.out, r.colors.render(r.colors.brace, "}"))
	}
	return nil
}

// reportOutput is the JSON shape of a report.
type reportOutput struct {
	*domain.ClusterReport
	Failures []string `json:"failures,omitempty"`
}

func (r *renderer) reportJSON(report *domain.ClusterReport) error {
	out := reportOutput{ClusterReport: report}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, f.Error())
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Fprintln(r.out, string(data))
	return nil
}

// notice prints a dimmed status line on stderr.
func (r *renderer) notice(format string, args ...any) {
	if r.json {
		return
	}
	fmt.Fprintln(r.errOut, r.colors.render(r.colors.muted, fmt.Sprintf(format, args...)))
}
