package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errPromptAborted = errors.New("prompt aborted")

// Prompter blocks until the operator submits an answer.
type Prompter interface {
	Ask(label string) (string, error)
}

type teaPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p teaPrompter) Ask(label string) (string, error) {
	prog := tea.NewProgram(newPromptModel(label), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(promptModel)
	if !ok || m.aborted {
		return "", errPromptAborted
	}
	return m.value, nil
}

type promptModel struct {
	label     string
	input     textinput.Model
	value     string
	submitted bool
	aborted   bool
}

func newPromptModel(label string) promptModel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 64
	input.Width = 32
	input.Focus()
	return promptModel{label: label, input: input}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	label := promptLabelStyle.Render(m.label)
	switch {
	case m.submitted:
		return label + " " + promptAnswerStyle.Render(m.value) + "\n"
	case m.aborted:
		return label + " " + mutedStyle.Render("(aborted)") + "\n"
	default:
		return label + "\n" + m.input.View() + "\n" + mutedStyle.Render("enter: submit | esc: abort")
	}
}
