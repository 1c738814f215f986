// Package replui implements the Read-Eval-Print Loop for the Osyris
// interpreter's interactive mode.
//
// It reuses the teacher's Bubble Tea/Bubbles/Lip Gloss interaction
// model (async evaluation via tea.Cmd, a spinner while evaluating,
// styled history, bracket-balance-driven multiline continuation) but
// drives Osyris's own pipeline: parser.Reader, eval.Eval, and
// errtrace.StackTrace instead of Monkey's lexer/parser/evaluator.
package replui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osyris-lang/osyris/internal/errtrace"
	"github.com/osyris-lang/osyris/internal/eval"
	"github.com/osyris-lang/osyris/internal/object"
	"github.com/osyris-lang/osyris/internal/parser"
	"github.com/osyris-lang/osyris/internal/runtime"
)

const (
	// Prompt is the default prompt for the REPL.
	Prompt = "osyris> "

	// ContPrompt is the continuation prompt shown while a multiline
	// input's brackets are still unbalanced.
	ContPrompt = "      . "
)

// Options configures the REPL's presentation.
type Options struct {
	NoColor bool // Disable styled output.
	Debug   bool // Print parse/eval timing to stderr.
}

// Start initializes and runs the REPL against a fresh root scope
// rooted at cwd (the directory `import` resolves relative names
// against).
func Start(cwd string, options Options) {
	p := tea.NewProgram(initialModel(cwd, options))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running REPL:", err)
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	traceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8700"))

	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676"))
)

// evalResultMsg is delivered once an asynchronous evaluation finishes.
// scope carries the (possibly extended) scope evaluation left behind,
// so a later command sees bindings a `def` made in an earlier one.
type evalResultMsg struct {
	output  string
	isError bool
	elapsed time.Duration
	scope   *object.Scope
}

type historyEntry struct {
	input          string
	output         string
	isError        bool
	evaluationTime time.Duration
}

// model is the Bubble Tea model backing the REPL: the persistent root
// scope, the accumulated history, and the input widget state.
type model struct {
	textInput       textinput.Model
	spinner         spinner.Model
	history         []historyEntry
	scope           *object.Scope
	evaluating      bool
	currentInput    string
	multilineBuffer string
	isMultiline     bool
	options         Options
}

func (m model) applyStyle(style lipgloss.Style, text string) string {
	if m.options.NoColor {
		return text
	}
	return style.Render(text)
}

func initialModel(cwd string, options Options) model {
	ti := textinput.New()
	ti.Placeholder = "Enter Osyris code"
	ti.Focus()
	ti.Width = 80
	ti.Prompt = promptStyle.Render(Prompt)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	return model{
		textInput: ti,
		spinner:   s,
		scope:     runtime.New(cwd, runtime.DefaultStreams()),
		options:   options,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// isBalanced reports whether every (), {}, and [] in input is closed,
// the same heuristic the teacher's REPL uses to decide whether to
// keep reading a multiline block before attempting to parse it.
func isBalanced(input string) bool {
	var stack []rune
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	for _, ch := range input {
		switch ch {
		case '(', '{', '[':
			stack = append(stack, ch)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[ch] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// evalCmd parses every top-level expression in input and evaluates it
// in sequence against scope, threading the scope through so `def`
// inside one REPL line is visible to later lines.
func evalCmd(input string, scope *object.Scope, debug bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		reader := parser.NewReader([]byte(input), "<repl>")

		var output string
		isError := false

		var result object.Value = object.None{}
		for {
			expr, err := reader.Parse()
			if err != nil {
				isError = true
				output = "Parse error: " + err.Error()
				break
			}
			if expr == nil {
				break
			}
			var evalErr error
			result, scope, evalErr = eval.Eval(expr, scope)
			if evalErr != nil {
				isError = true
				output = errtrace.Wrap(evalErr).Error()
				break
			}
		}

		if !isError {
			output = result.Inspect()
		}

		elapsed := time.Since(start)
		if debug {
			fmt.Fprintf(os.Stderr, "DEBUG: eval took %v\n", elapsed)
		}

		return evalResultMsg{output: output, isError: isError, elapsed: elapsed, scope: scope}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.evaluating {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case evalResultMsg:
		m.evaluating = false
		m.history = append(m.history, historyEntry{
			input:          m.currentInput,
			output:         msg.output,
			isError:        msg.isError,
			evaluationTime: msg.elapsed,
		})
		if !msg.isError {
			m.scope = msg.scope
		}
		m.currentInput = ""
		return m, nil

	case tea.KeyMsg:
		if m.evaluating && msg.Type != tea.KeyCtrlC {
			return m, m.spinner.Tick
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			input := m.textInput.Value()
			if input == "" {
				if m.isMultiline {
					if m.multilineBuffer == "" {
						m.isMultiline = false
						return m, nil
					}
					return m.startEval(m.multilineBuffer, true)
				}
				return m, nil
			}

			if m.isMultiline {
				m.multilineBuffer += "\n" + input
				m.textInput.SetValue("")
				if isBalanced(m.multilineBuffer) {
					return m.startEval(m.multilineBuffer, true)
				}
				return m, nil
			}

			if !isBalanced(input) {
				m.isMultiline = true
				m.multilineBuffer = input
				m.textInput.SetValue("")
				return m, nil
			}

			return m.startEval(input, false)
		}
	}

	if !m.evaluating {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	if m.evaluating {
		return m, m.spinner.Tick
	}
	return m, cmd
}

// startEval transitions the model into the evaluating state and
// returns the tea.Cmd that will run input asynchronously.
func (m model) startEval(input string, fromMultiline bool) (tea.Model, tea.Cmd) {
	m.evaluating = true
	m.currentInput = input
	m.textInput.SetValue("")
	if fromMultiline {
		m.isMultiline = false
		m.multilineBuffer = ""
	}
	cmd := evalCmd(input, m.scope, m.options.Debug)
	return m, cmd
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(m.applyStyle(titleStyle, " Osyris REPL "))
	s.WriteString("\n\n")

	for _, entry := range m.history {
		lines := strings.Split(entry.input, "\n")
		for i, line := range lines {
			if i == 0 {
				s.WriteString(m.applyStyle(promptStyle, Prompt))
			} else {
				s.WriteString(m.applyStyle(promptStyle, ContPrompt))
			}
			s.WriteString(line)
			s.WriteString("\n")
		}

		if entry.isError {
			for i, line := range strings.Split(entry.output, "\n") {
				if i > 0 {
					s.WriteString("\n")
				}
				if i == 0 {
					s.WriteString(m.applyStyle(errorStyle, line))
				} else {
					s.WriteString(m.applyStyle(traceStyle, line))
				}
			}
		} else {
			s.WriteString(m.applyStyle(resultStyle, entry.output))
		}

		if entry.evaluationTime > 10*time.Millisecond {
			s.WriteString(m.applyStyle(historyStyle, fmt.Sprintf(" (%.2fs)", entry.evaluationTime.Seconds())))
		}
		s.WriteString("\n\n")
	}

	if m.evaluating {
		s.WriteString(m.applyStyle(promptStyle, Prompt))
		s.WriteString(m.currentInput)
		s.WriteString("\n")
		s.WriteString(m.spinner.View())
		s.WriteString(" Evaluating...\n\n")
	}

	if m.isMultiline && !m.evaluating {
		s.WriteString(m.applyStyle(historyStyle, "Current multiline input:\n"))
		s.WriteString(m.multilineBuffer)
		s.WriteString("\n")
	}

	if !m.evaluating {
		if m.isMultiline {
			m.textInput.Prompt = m.applyStyle(promptStyle, ContPrompt)
		} else {
			m.textInput.Prompt = m.applyStyle(promptStyle, Prompt)
		}
		s.WriteString(m.textInput.View())
		s.WriteString("\n")
	}

	s.WriteString(m.applyStyle(historyStyle, "\nPress Esc or Ctrl+C/D to exit"))
	return s.String()
}
