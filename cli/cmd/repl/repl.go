package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cellang/cellang/lang"
	"github.com/cellang/cellang/log"
)

const evalPrompt = "➜ "

func helpMessage() string {
	return `
Commands:

  :help          Print this cruft
  :vars          List bound variables
  :funcs         List registered functions
  :set NAME F    Evaluate formula F and bind the result to NAME
  :clear         Clear screen
  :quit          Exit REPL

Usage:
  Type a formula to evaluate it ({{name}} references a variable)
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to dismiss candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	engine       *lang.Engine
	vars         lang.Vars
	logger       log.Logger
	history      *History
	historyIdx   int
	lines        []string // rendered scrollback
	matches      fuzzy.Matches
	candidates   []string
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
}

// Run starts the REPL against the given engine and variable bindings.
// History persists under stateDir unless it is empty.
func Run(
	ctx context.Context,
	engine *lang.Engine,
	vars lang.Vars,
	stateDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if engine == nil {
		engine = lang.New()
	}

	if vars == nil {
		vars = lang.Vars{}
	}

	historyPath := ""
	if stateDir != "" {
		historyPath = filepath.Join(stateDir, baseHistory)
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl start",
		slog.Int("history_entries", history.Len()),
		slog.Int("bound_variables", len(vars)),
	)

	m := newModel(ctx, engine, vars, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	engine *lang.Engine,
	vars lang.Vars,
	history *History,
	logger log.Logger,
) model {
	input := textinput.New()
	input.Prompt = promptStyle.Render(evalPrompt)
	input.Placeholder = `formula ("{{price}} * {{qty}}") or :help`
	input.Focus()

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      input,
		engine:     engine,
		vars:       vars,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt) - 1

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+d":
		m.quitting = true

		return m, tea.Quit

	case "ctrl+c":
		if strings.TrimSpace(m.input.Value()) == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.resetCompletion()

		return m, nil

	case "enter":
		return m.submit()

	case "tab":
		return m.cycle(1), nil

	case "shift+tab":
		return m.cycle(-1), nil

	case "esc":
		if m.tabActive {
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
		}

		m.resetCompletion()

		return m, nil

	case "up":
		return m.recallHistory(-1), nil

	case "down":
		return m.recallHistory(1), nil
	}

	return m.updateInput(msg)
}

// updateInput forwards a message to the text input and recomputes
// completions.
func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.tabActive = false
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = 0

	return m, cmd
}

// cycle advances the completion selection and applies the selected candidate
// to the input.
func (m model) cycle(dir int) model {
	if len(m.matches) == 0 {
		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.suggIdx = 0
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
	} else {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	}

	candidate := m.matches[m.suggIdx].Str
	text := m.preTabText

	replaced := text[:m.wordStart] + candidate + text[m.wordEnd:]
	m.input.SetValue(replaced)
	m.input.SetCursor(m.wordStart + len(candidate))

	return m
}

// recallHistory moves through previous entries. Direction -1 is older,
// +1 is newer; past the newest entry the input clears.
func (m model) recallHistory(dir int) model {
	if m.history.Len() == 0 {
		return m
	}

	idx := m.historyIdx + dir
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx

	if idx == m.history.Len() {
		m.input.SetValue("")
	} else if line, err := m.history.At(idx); err == nil {
		m.input.SetValue(line)
		m.input.SetCursor(len(line))
	}

	m.resetCompletion()

	return m
}

func (m *model) resetCompletion() {
	m.tabActive = false
	m.matches = nil
	m.candidates = nil
	m.suggIdx = 0
}

// submit evaluates the current line.
func (m model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m.resetCompletion()

	if text == "" {
		return m, nil
	}

	if _, err := m.history.Write(text); err != nil {
		m.logger.Warn("could not persist history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	m.lines = append(m.lines, formatCommand(text))

	if strings.HasPrefix(text, ":") {
		return m.runCommand(strings.TrimPrefix(text, ":"))
	}

	result, err := m.engine.Evaluate(text, m.vars)
	if err != nil {
		m.logger.DebugContext(m.ctxFunc(), "repl eval failed",
			slog.String("formula", text),
			slog.Any("error", err),
		)

		m.lines = append(m.lines, errorStyle.Render("! "+err.Error()))

		return m, nil
	}

	m.lines = append(m.lines, resultStyle.Render("= "+result.String()))

	return m, nil
}

// runCommand executes a colon command.
func (m model) runCommand(command string) (tea.Model, tea.Cmd) {
	name, rest, _ := strings.Cut(command, " ")

	switch name {
	case "quit", "exit":
		m.quitting = true

		return m, tea.Quit

	case "clear":
		m.lines = nil

		return m, nil

	case "help":
		m.lines = append(m.lines, hintStyle.Render(helpMessage()))

		return m, nil

	case "funcs":
		names := m.engine.Registry().Names()
		m.lines = append(m.lines, hintStyle.Render(strings.Join(names, "  ")))

		return m, nil

	case "vars":
		names := m.variableNames()
		if len(names) == 0 {
			m.lines = append(m.lines, hintStyle.Render("(no variables bound)"))

			return m, nil
		}

		for _, varName := range names {
			m.lines = append(m.lines, hintStyle.Render(
				fmt.Sprintf("%s = %s", varName, m.vars[varName].String()),
			))
		}

		return m, nil

	case "set":
		varName, formula, ok := strings.Cut(strings.TrimSpace(rest), " ")
		if !ok || strings.TrimSpace(formula) == "" {
			m.lines = append(m.lines, errorStyle.Render("! usage: :set NAME FORMULA"))

			return m, nil
		}

		result, err := m.engine.Evaluate(formula, m.vars)
		if err != nil {
			m.lines = append(m.lines, errorStyle.Render("! "+err.Error()))

			return m, nil
		}

		m.vars[varName] = result
		m.lines = append(m.lines, resultStyle.Render(
			fmt.Sprintf("%s = %s", varName, result.String()),
		))

		return m, nil

	default:
		m.lines = append(m.lines, errorStyle.Render(
			fmt.Sprintf("! unknown command %q (try :help)", name),
		))

		return m, nil
	}
}

func (m model) View() string {
	if m.quitting {
		return strings.Join(m.lines, "\n") + "\n"
	}

	var b strings.Builder

	if len(m.lines) > 0 {
		b.WriteString(strings.Join(m.lines, "\n"))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if bar := m.renderCandidateBar(); bar != "" {
		b.WriteString(bar)
	} else {
		b.WriteString(hintStyle.Render("Tab completes · :help for commands"))
	}

	b.WriteString("\n")

	return b.String()
}
