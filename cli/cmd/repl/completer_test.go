package repl

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/cellang/cellang/lang"
)

func testModel(t *testing.T, value string, cursor int, vars lang.Vars) model {
	t.Helper()

	input := textinput.New()
	input.SetValue(value)
	input.SetCursor(cursor)

	return model{
		input:  input,
		engine: lang.New(),
		vars:   vars,
		width:  defaultWidth,
	}
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{name: "empty", input: "", cursor: 0, word: "", start: 0, end: 0},
		{name: "bare word", input: "SUM", cursor: 3, word: "SUM", start: 0, end: 3},
		{name: "mid word", input: "SUM", cursor: 1, word: "SUM", start: 0, end: 3},
		{name: "after paren", input: "SUM(", cursor: 4, word: "", start: 4, end: 4},
		{name: "second arg", input: "SUM(1; AVG", cursor: 10, word: "AVG", start: 7, end: 10},
		{name: "dotted name", input: "{{user.name", cursor: 11, word: "user.name", start: 2, end: 11},
		{name: "underscore", input: "TO_TEXT", cursor: 7, word: "TO_TEXT", start: 0, end: 7},
		{name: "after operator", input: "1 + LE", cursor: 6, word: "LE", start: 4, end: 6},
		{name: "cursor past end clamps", input: "AB", cursor: 99, word: "AB", start: 0, end: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("expected (%q, %d, %d), got (%q, %d, %d)",
					tt.word, tt.start, tt.end, word, start, end)
			}
		})
	}
}

func TestInPlaceholder(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		want   bool
	}{
		{name: "inside open", input: "{{pri", offset: 5, want: true},
		{name: "outside", input: "SUM(1)", offset: 4, want: false},
		{name: "after close", input: "{{a}} + b", offset: 8, want: false},
		{name: "second open", input: "{{a}} * {{q", offset: 10, want: true},
		{name: "at open", input: "{{", offset: 2, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inPlaceholder(tt.input, tt.offset); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestComputeMatches_Functions(t *testing.T) {
	m := testModel(t, "SU", 2, nil)

	matches, _, start, end := m.computeMatches()
	if len(matches) == 0 {
		t.Fatal("expected function matches for SU")
	}

	if start != 0 || end != 2 {
		t.Errorf("expected word bounds (0, 2), got (%d, %d)", start, end)
	}

	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = match.Str
	}

	if !slices.Contains(names, "SUM") {
		t.Errorf("expected SUM among matches, got %v", names)
	}
}

func TestComputeMatches_EmptyWordOutsidePlaceholder(t *testing.T) {
	m := testModel(t, "SUM(", 4, nil)

	matches, _, _, _ := m.computeMatches()
	if len(matches) != 0 {
		t.Errorf("expected no matches on boundary, got %d", len(matches))
	}
}

func TestComputeMatches_Variables(t *testing.T) {
	vars := lang.Vars{
		"price":    lang.Number(9.99),
		"quantity": lang.Int(3),
	}

	m := testModel(t, "{{pr", 4, vars)

	matches, _, _, _ := m.computeMatches()
	if len(matches) != 1 {
		t.Fatalf("expected exactly one variable match, got %d", len(matches))
	}

	if matches[0].Str != "price" {
		t.Errorf("expected price, got %q", matches[0].Str)
	}
}

func TestComputeMatches_FreshPlaceholderOffersAll(t *testing.T) {
	vars := lang.Vars{
		"alpha": lang.Int(1),
		"beta":  lang.Int(2),
	}

	m := testModel(t, "{{", 2, vars)

	matches, _, _, _ := m.computeMatches()
	if len(matches) != 2 {
		t.Fatalf("expected all variables offered, got %d", len(matches))
	}

	if matches[0].Str != "alpha" || matches[1].Str != "beta" {
		t.Errorf("expected sorted candidates, got %v", matches)
	}
}

func TestComputeMatches_ColonCommands(t *testing.T) {
	m := testModel(t, ":fu", 3, nil)

	matches, _, start, _ := m.computeMatches()
	if len(matches) == 0 {
		t.Fatal("expected command matches for :fu")
	}

	if matches[0].Str != "funcs" {
		t.Errorf("expected funcs first, got %q", matches[0].Str)
	}

	// The colon itself stays out of the replacement range.
	if start != 1 {
		t.Errorf("expected word start after colon, got %d", start)
	}
}

func TestIsFunction(t *testing.T) {
	m := testModel(t, "", 0, lang.Vars{"sum": lang.Int(1)})

	if !m.isFunction("SUM") {
		t.Error("expected SUM to resolve as a function")
	}

	if m.isFunction("nonexistent") {
		t.Error("expected unknown name to not resolve")
	}
}

func TestRenderCandidateBar_Empty(t *testing.T) {
	m := testModel(t, "", 0, nil)

	if bar := m.renderCandidateBar(); bar != "" {
		t.Errorf("expected empty bar without matches, got %q", bar)
	}
}

func TestRenderCandidateBar_ShowsCandidates(t *testing.T) {
	m := testModel(t, "SU", 2, nil)
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	bar := m.renderCandidateBar()
	if bar == "" {
		t.Fatal("expected non-empty candidate bar")
	}
}
