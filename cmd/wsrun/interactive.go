package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arvasit/wsrun/internal/workspace"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// stdinIsTerminal reports whether prompts can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// inputModel asks for one value. An empty answer takes the fallback.
type inputModel struct {
	textInput textinput.Model
	title     string
	fallback  string
	validate  func(string) error
	value     string
	errMsg    string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			val := strings.TrimSpace(m.textInput.Value())
			if val == "" {
				val = m.fallback
			}
			if m.validate != nil {
				if err := m.validate(val); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.value = val
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	if m.fallback != "" {
		b.WriteString(" " + hintStyle.Render("(default "+m.fallback+")"))
	}
	b.WriteString("\n" + m.textInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// confirmModel is a yes/no toggle defaulting to no.
type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "y", "Y":
		m.value, m.done = true, true
		return m, tea.Quit
	case "n", "N":
		m.value, m.done = false, true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yes, no := " Yes ", " No "
	if m.value {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}
	return fmt.Sprintf("%s %s / %s\n", titleStyle.Render(m.title), yes, no)
}

func promptInput(title, fallback string, validate func(string) error) (string, error) {
	ti := textinput.New()
	ti.Placeholder = fallback
	ti.Focus()

	result, err := tea.NewProgram(inputModel{
		textInput: ti,
		title:     title,
		fallback:  fallback,
		validate:  validate,
	}).Run()
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", usageErrorf("aborted")
	}
	return rm.value, nil
}

func promptConfirm(title string) (bool, error) {
	result, err := tea.NewProgram(confirmModel{title: title}).Run()
	if err != nil {
		return false, err
	}
	rm := result.(confirmModel)
	if rm.aborted {
		return false, usageErrorf("aborted")
	}
	return rm.value, nil
}

// runArgs are the values the run command needs before it can plan.
type runArgs struct {
	category string
	task     string
	parallel bool
}

// promptRunArgs asks for whichever of category and task are still empty, and
// for the parallel switch when askParallel is set.
func promptRunArgs(a runArgs, askParallel bool) (runArgs, error) {
	var err error
	if a.category == "" {
		a.category, err = promptInput(
			"Category: "+strings.Join(workspace.Selectors(), ", "),
			string(workspace.CategoryAll),
			categoryValidator,
		)
		if err != nil {
			return a, err
		}
	}
	if a.task == "" {
		a.task, err = promptInput("Task (package.json script)", "build", taskNameValidator)
		if err != nil {
			return a, err
		}
	}
	if askParallel {
		a.parallel, err = promptConfirm("Start in parallel (long-running tasks)?")
		if err != nil {
			return a, err
		}
	}
	return a, nil
}

func categoryValidator(s string) error {
	_, err := workspace.ParseCategory(s)
	return err
}

// taskNameValidator rejects empty script names and names with whitespace.
func taskNameValidator(s string) error {
	if s == "" {
		return fmt.Errorf("task name is required")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("task name must not contain whitespace")
	}
	return nil
}
