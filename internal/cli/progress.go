package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/depviz/pkg/deps"
	"github.com/matzehuels/depviz/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const tickInterval = 80 * time.Millisecond

// Messages sent to the progress model while a build runs.
type (
	tickMsg  struct{}
	fetchMsg struct {
		pkg    string
		failed bool
	}
	layerMsg struct {
		depth int
		total int
	}
	buildDoneMsg struct {
		res *deps.Result
		err error
	}
)

// progressModel is the bubbletea model shown while a dependency graph is
// resolved on a terminal. The build itself runs as the model's init command.
type progressModel struct {
	pkg   string
	build func() (*deps.Result, error)

	frame   int
	depth   int
	fetched int
	failed  int
	total   int
	last    string

	res  *deps.Result
	err  error
	done bool
}

func newProgressModel(pkg string, build func() (*deps.Result, error)) progressModel {
	return progressModel{pkg: pkg, build: build}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(tick(), func() tea.Msg {
		res, err := m.build()
		return buildDoneMsg{res: res, err: err}
	})
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()
	case fetchMsg:
		m.fetched++
		if msg.failed {
			m.failed++
		}
		m.last = msg.pkg
	case layerMsg:
		m.depth = msg.depth + 1
		m.total = msg.total
	case buildDoneMsg:
		m.res, m.err, m.done = msg.res, msg.err, true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleIconSpinner.Render(spinnerFrames[m.frame]))
	b.WriteString(" Resolving " + StyleTitle.Render(m.pkg))

	parts := []string{
		fmt.Sprintf("depth %d", m.depth),
		fmt.Sprintf("%d fetched", m.fetched),
	}
	if m.total > 0 {
		parts = append(parts, fmt.Sprintf("%d packages", m.total))
	}
	if m.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", m.failed))
	}
	b.WriteString("  " + StyleDim.Render(strings.Join(parts, " · ")))
	if m.last != "" {
		b.WriteString("  " + StyleDim.Render(m.last))
	}
	b.WriteString("\n")
	return b.String()
}

// progressHooks forwards resolver events to a running progress program.
type progressHooks struct {
	observability.NoopBuildHooks
	send func(tea.Msg)
}

func (h progressHooks) OnFetch(_ context.Context, _ string, pkg string, _ time.Duration, err error) {
	h.send(fetchMsg{pkg: pkg, failed: err != nil})
}

func (h progressHooks) OnLayerComplete(_ context.Context, _ string, depth, _, total int) {
	h.send(layerMsg{depth: depth, total: total})
}

// runWithProgress runs build while rendering a live progress line. The
// program exits once build returns, so build must honor cancellation itself.
// Resolver hooks are restored afterwards.
func (c *CLI) runWithProgress(pkg string, build func() (*deps.Result, error)) (*deps.Result, error) {
	p := tea.NewProgram(newProgressModel(pkg, build),
		tea.WithInput(nil),
		tea.WithOutput(c.err),
		tea.WithoutSignalHandler(),
	)

	prev := observability.Build()
	observability.SetBuildHooks(progressHooks{send: p.Send})
	defer observability.SetBuildHooks(prev)

	final, err := p.Run()
	if m, ok := final.(progressModel); ok && m.done {
		return m.res, m.err
	}
	if err == nil {
		err = tea.ErrProgramKilled
	}
	return nil, fmt.Errorf("progress display: %w", err)
}
