package tui

import (
	"context"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nguyentantai21042004/meetscribe/internal/pipeline"
)

// ModeModel waits for F (transcribe + summarize) or S (summarize only).
type ModeModel struct {
	folder    string
	mode      pipeline.Mode
	chosen    bool
	cancelled bool
}

func NewModeModel(folder string) ModeModel {
	return ModeModel{folder: folder}
}

func (m ModeModel) Init() tea.Cmd { return nil }

func (m ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(key.String()) {
	case "f":
		m.mode, m.chosen = pipeline.ModeFull, true
		return m, tea.Quit
	case "s":
		m.mode, m.chosen = pipeline.ModeSummarizeOnly, true
		return m, tea.Quit
	case "esc", "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ModeModel) View() string {
	if m.chosen {
		return infoStyle.Render("Mode: "+m.mode.String()) + "\n"
	}
	if m.cancelled {
		return ""
	}

	return titleStyle.Render("Folder: ") + m.folder + "\n\n" +
		keyStyle.Render("F") + "  transcribe + summarize\n" +
		keyStyle.Render("S") + "  summarize existing .txt files only\n\n" +
		dimStyle.Render("Esc to cancel") + "\n"
}

// Chosen returns the selected mode and whether one was picked.
func (m ModeModel) Chosen() (pipeline.Mode, bool) {
	return m.mode, m.chosen
}

// ChooseMode asks for the processing mode with a single key press.
func ChooseMode(ctx context.Context, in io.Reader, out io.Writer, folder string) (pipeline.Mode, error) {
	final, err := tea.NewProgram(NewModeModel(folder), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return 0, err
	}

	mode, ok := final.(ModeModel).Chosen()
	if !ok {
		return 0, ErrCancelled
	}
	return mode, nil
}
