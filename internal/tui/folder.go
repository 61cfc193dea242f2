package tui

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FolderModel asks for a folder path and only accepts existing directories.
type FolderModel struct {
	input     textinput.Model
	value     string
	problem   string
	cancelled bool
}

func NewFolderModel() FolderModel {
	ti := textinput.New()
	ti.Placeholder = "recordings/2025-01-31_10-00-00"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	return FolderModel{input: ti}
}

func (m FolderModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FolderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return m, nil
			}
			if info, err := os.Stat(path); err != nil || !info.IsDir() {
				m.problem = "Folder not found: " + path
				return m, nil
			}
			m.value = path
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
		m.problem = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m FolderModel) View() string {
	if m.value != "" || m.cancelled {
		return ""
	}

	s := titleStyle.Render("Folder with recordings or transcripts:") + "\n" + m.input.View() + "\n"
	if m.problem != "" {
		s += errorStyle.Render(m.problem) + "\n"
	}
	return s + dimStyle.Render("Enter to confirm, Esc to cancel") + "\n"
}

// Value returns the accepted folder, empty if none was accepted.
func (m FolderModel) Value() string { return m.value }

// PromptFolder asks for an existing folder.
func PromptFolder(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	final, err := tea.NewProgram(NewFolderModel(), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", err
	}

	folder := final.(FolderModel).Value()
	if folder == "" {
		return "", ErrCancelled
	}
	return folder, nil
}
