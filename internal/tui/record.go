package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
)

// RecordFunc records until stop is closed.
type RecordFunc func(stop <-chan struct{}) error

type recordingDoneMsg struct{ err error }

// RecordModel shows the elapsed time and closes its stop channel on Ctrl+Q.
type RecordModel struct {
	output    string
	stopwatch stopwatch.Model
	stop      chan struct{}
	stopOnce  *sync.Once
	stopping  bool
	done      bool
	err       error
}

func NewRecordModel(output string) RecordModel {
	return RecordModel{
		output:    output,
		stopwatch: stopwatch.NewWithInterval(time.Second),
		stop:      make(chan struct{}),
		stopOnce:  &sync.Once{},
	}
}

// Stop is closed once the user asked to stop.
func (m RecordModel) Stop() <-chan struct{} { return m.stop }

func (m RecordModel) requestStop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m RecordModel) Init() tea.Cmd {
	return m.stopwatch.Init()
}

func (m RecordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q", "ctrl+c":
			if !m.stopping {
				m.stopping = true
				m.requestStop()
			}
			return m, m.stopwatch.Stop()
		}
		return m, nil

	case recordingDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.stopwatch, cmd = m.stopwatch.Update(msg)
	return m, cmd
}

func (m RecordModel) View() string {
	if m.done {
		if m.err != nil {
			return errorStyle.Render("Recording failed: "+m.err.Error()) + "\n"
		}
		return infoStyle.Render(fmt.Sprintf("Recording stopped after %s", m.stopwatch.Elapsed().Round(time.Second))) + "\n"
	}

	status := recStyle.Render("● REC") + "  " + m.stopwatch.View()
	hint := dimStyle.Render("Press ") + keyStyle.Render("Ctrl+Q") + dimStyle.Render(" to stop")
	if m.stopping {
		hint = dimStyle.Render("Stopping, finalizing file...")
	}

	return boxStyle.Render(titleStyle.Render("meetscribe")+"\n\n"+status+"\n"+infoStyle.Render(m.output)+"\n\n"+hint) + "\n"
}

// RunRecording runs record in the background while the prompt is shown.
// It returns once the recording has ended, with record's error.
func RunRecording(ctx context.Context, in io.Reader, out io.Writer, output string, record RecordFunc) error {
	m := NewRecordModel(output)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	result := make(chan error, 1)
	go func() {
		err := record(m.Stop())
		result <- err
		p.Send(recordingDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		// The UI went away; make sure the recording still ends cleanly.
		m.requestStop()
		if recErr := <-result; recErr != nil {
			return recErr
		}
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal UI: %w", err)
	}

	return <-result
}
