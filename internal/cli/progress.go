package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/xcross/internal/pipeline"
)

// Messages
type tickMsg time.Time
type stageStartMsg struct{ stage pipeline.Stage }
type stageDoneMsg struct {
	stage    pipeline.Stage
	duration time.Duration
	err      error
}
type layerMsg struct {
	stage      pipeline.Stage
	depth      int
	discovered int64
}
type aggregateMsg struct{ done, total int }
type finishedMsg struct {
	result *pipeline.Result
	err    error
}

type stageState int

const (
	statePending stageState = iota
	stateRunning
	stateDone
	stateFailed
)

type stageView struct {
	state    stageState
	duration time.Duration
	depth    int
	entries  int64
}

// progressModel is the bubbletea model behind --tui. It only renders; the
// pipeline runs in its own goroutine and reports through teaHooks.
type progressModel struct {
	stages  map[pipeline.Stage]*stageView
	done    int
	total   int
	started time.Time
	now     time.Time

	cancel   context.CancelFunc
	stopping bool

	result *pipeline.Result
	err    error
}

func newProgressModel(cancel context.CancelFunc) *progressModel {
	m := &progressModel{
		stages:  make(map[pipeline.Stage]*stageView),
		started: time.Now(),
		now:     time.Now(),
		cancel:  cancel,
	}
	for _, s := range pipeline.Stages {
		m.stages[s] = &stageView{}
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *progressModel) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Wait for the pipeline to unwind before quitting.
			m.stopping = true
			m.cancel()
		}

	case tickMsg:
		m.now = time.Time(msg)
		return m, m.tickCmd()

	case stageStartMsg:
		m.stages[msg.stage].state = stateRunning

	case stageDoneMsg:
		v := m.stages[msg.stage]
		v.duration = msg.duration
		v.state = stateDone
		if msg.err != nil {
			v.state = stateFailed
		}

	case layerMsg:
		v := m.stages[msg.stage]
		v.depth = msg.depth
		v.entries += msg.discovered

	case aggregateMsg:
		m.done = max(m.done, msg.done)
		m.total = msg.total

	case finishedMsg:
		m.result, m.err = msg.result, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *progressModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("xcross"))
	b.WriteString(styleDim.Render(fmt.Sprintf("  %s", m.now.Sub(m.started).Round(time.Second))))
	b.WriteString("\n\n")

	for _, s := range pipeline.Stages {
		v := m.stages[s]
		var icon string
		switch v.state {
		case statePending:
			icon = styleDim.Render(iconPending)
		case stateRunning:
			icon = styleIconRunning.Render(iconRunning)
		case stateDone:
			icon = styleIconSuccess.Render(iconSuccess)
		case stateFailed:
			icon = styleIconError.Render(iconError)
		}

		fmt.Fprintf(&b, "%s %-18s", icon, stageLabels[s])
		switch {
		case v.state == stateDone || v.state == stateFailed:
			b.WriteString(styleDim.Render(v.duration.Round(time.Millisecond).String()))
		case v.state == stateRunning && s == pipeline.StageAggregate && m.total > 0:
			b.WriteString(progressBar(m.done, m.total, 30))
		case v.state == stateRunning && v.depth > 0:
			b.WriteString(styleDim.Render(fmt.Sprintf("depth %d, %d entries", v.depth, v.entries+1)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.stopping {
		b.WriteString(styleDim.Render("stopping..."))
	} else {
		b.WriteString(styleDim.Render("q: cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

// progressBar renders done/total as a fixed-width bar with a percentage.
func progressBar(done, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := done * width / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styleNumber.Render(bar) + styleDim.Render(fmt.Sprintf(" %3d%%", done*100/total))
}

// teaHooks forwards pipeline events to a running program.
type teaHooks struct {
	p *tea.Program
}

func (h teaHooks) OnStageStart(_ context.Context, s pipeline.Stage) {
	h.p.Send(stageStartMsg{stage: s})
}

func (h teaHooks) OnStageComplete(_ context.Context, s pipeline.Stage, d time.Duration, err error) {
	h.p.Send(stageDoneMsg{stage: s, duration: d, err: err})
}

func (h teaHooks) OnLayer(_ context.Context, s pipeline.Stage, depth int, discovered int64) {
	h.p.Send(layerMsg{stage: s, depth: depth, discovered: discovered})
}

func (h teaHooks) OnProgress(_ context.Context, done, total int) {
	h.p.Send(aggregateMsg{done: done, total: total})
}

// runWithProgress executes the runner while a progress view draws on w.
func runWithProgress(ctx context.Context, runner *pipeline.Runner, w io.Writer) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newProgressModel(cancel)
	p := tea.NewProgram(model, tea.WithOutput(w))
	runner.Hooks = pipeline.MultiHooks{runner.Hooks, teaHooks{p: p}}

	go func() {
		res, err := runner.Execute(ctx)
		p.Send(finishedMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	fm := final.(*progressModel)
	return fm.result, fm.err
}
