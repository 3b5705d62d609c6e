package repl

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/clj/lang"
)

// ctrlCommands are the available control-mode commands (spec.md REPL
// section: :doc, :list-ns, :clear, :quit).
var ctrlCommands = []string{"doc", "list-ns", "clear", "quit", "help"}

// isWordBoundary reports whether r delimits a symbol/keyword for
// completion purposes. Clojure-style identifiers can contain '-', '?',
// '!', '*', '+', '<', '>', '=', '/' as ordinary characters, so only
// whitespace and reader syntax punctuation are boundaries.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n',
		'(', ')', '[', ']', '{', '}',
		'"', '\'', '`', '~', ',', ';':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input.
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

// bindingNames collects every name visible from env: its own bindings plus
// every outer scope's, which for a namespace env reaches clojure.core.
func bindingNames(env *lang.Env) []string {
	seen := make(map[string]struct{})

	for e := env; e != nil; e = e.Outer() {
		for _, name := range e.LocalNames() {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// evalCandidates returns the completion candidate list for eval mode:
// special forms, then every binding visible from env.
func evalCandidates(env *lang.Env) []string {
	candidates := append([]string{}, lang.SpecialForms()...)
	candidates = append(candidates, bindingNames(env)...)
	sort.Strings(candidates)

	return candidates
}

// computeMatches runs fuzzy matching over the appropriate candidate list
// for the current mode and input state.
func (m model) computeMatches() (fuzzy.Matches, []string, int, int) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, start, end := wordBounds(input, cursor)
	if word == "" {
		return nil, nil, start, end
	}

	var candidates []string

	if m.mode == modeCtrl {
		candidates = ctrlCommands
	} else {
		candidates = evalCandidates(m.env)
	}

	matches := fuzzy.Find(word, candidates)

	return matches, candidates, start, end
}

// renderCandidateBar renders the horizontal completion bar shown below the
// input line.
func renderCandidateBar(matches fuzzy.Matches, selected int, active bool, width int) string {
	parts := make([]string, 0, len(matches))

	for i, match := range matches {
		text := match.Str
		if active && i == selected {
			text = selectedStyle.Render(text)
		} else {
			text = suggestionStyle.Render(text)
		}

		parts = append(parts, text)
	}

	line := strings.Join(parts, "  ")
	for width > 0 && lipgloss.Width(line) > width && len(parts) > 0 {
		parts = parts[:len(parts)-1]
		line = strings.Join(parts, "  ")
	}

	return line
}
