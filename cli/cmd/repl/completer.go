package repl

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the available colon commands.
var ctrlCommands = []string{"clear", "funcs", "help", "quit", "set", "vars"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. Dots and underscores are intentionally excluded: variable names
// may contain dots (user.name) and function names may contain underscores
// (TO_TEXT).
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'{', '}', '(', ')',
		'+', '-', '*', '/', '^',
		'<', '>', '=',
		'&', ',', ';', '"':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inPlaceholder reports whether the given offset sits inside an unclosed
// {{…}} placeholder, which switches completion from function names to
// variable names.
func inPlaceholder(input string, offset int) bool {
	before := input[:offset]

	open := strings.LastIndex(before, "{{")
	if open == -1 {
		return false
	}

	return !strings.Contains(before[open:], "}}")
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor: variable names inside a {{…}} placeholder, colon commands on a
// command line, and function names everywhere else.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	switch {
	case strings.HasPrefix(input, ":"):
		candidates = ctrlCommands
		word = strings.TrimPrefix(word, ":")

		if word != "" && wordStart < len(input) && input[wordStart] == ':' {
			wordStart++
		}

	case inPlaceholder(input, wordStart):
		candidates = m.variableNames()

		// Inside a fresh placeholder, offer everything.
		if word == "" {
			if len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}

	default:
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = m.engine.Registry().Names()
	}

	if word == "" || len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// variableNames returns the bound variable names, sorted.
func (m model) variableNames() []string {
	names := make([]string, 0, len(m.vars))
	for name := range m.vars {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// isFunction reports whether a candidate name resolves in the function
// registry, which adds a "()" suffix to its rendering.
func (m model) isFunction(name string) bool {
	_, ok := m.engine.Registry().Lookup(name)

	return ok
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within the given terminal width. The selected candidate (when tabbing)
// uses the selected style.
func (m model) renderCandidateBar() string {
	matches, width := m.matches, m.width
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := m.tabActive && i == m.suggIdx
		rendered := m.renderCandidate(match, selected)
		entryWidth := lipgloss.Width(rendered)

		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	if m.isFunction(match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
