package repl

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/clj/lang"
)

// funcCallInfo describes the function call the cursor is currently inside,
// as detected by detectFunctionCall.
type funcCallInfo struct {
	inCall   bool
	name     string
	argIndex int
}

// detectFunctionCall inspects input up to cursor and reports whether the
// cursor sits inside a call form "(name arg0 arg1 ...)", along with the
// head symbol and which argument position the cursor is on.
func detectFunctionCall(input string, cursor int) funcCallInfo {
	if cursor > len(input) {
		cursor = len(input)
	}

	depth := 0
	callStart := -1

	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				callStart = i

				goto found
			}

			depth--
		}
	}

found:
	if callStart == -1 {
		return funcCallInfo{}
	}

	rest := input[callStart+1 : cursor]
	fields := strings.Fields(rest)

	if len(fields) == 0 {
		return funcCallInfo{}
	}

	argIndex := strings.Count(strings.TrimRight(rest, " \t"), " ")
	if !strings.HasSuffix(rest, " ") {
		argIndex--
	}

	if argIndex < 0 {
		argIndex = 0
	}

	return funcCallInfo{inCall: true, name: fields[0], argIndex: argIndex}
}

// getSignature renders a human-readable call signature for name as
// resolved in env, plus the list of parameter names for highlighting.
// The empty string is returned when name does not resolve to a callable.
func getSignature(env *lang.Env, name string) (signature string, params []string) {
	v, err := env.Lookup(name)
	if err != nil || !v.IsCallable() {
		return "", nil
	}

	if fn := v.Func(); fn != nil {
		return functionSignature(name, fn), functionParams(fn)
	}

	if native := v.Native(); native != nil {
		return "(" + native.Name + " ...)", nil
	}

	return "", nil
}

func functionSignature(name string, fn *lang.Function) string {
	arities := make([]string, 0, len(fn.Arities))

	for _, a := range fn.Arities {
		parts := append([]string{name}, a.Params...)
		if a.HasRest {
			parts = append(parts, "&", a.RestParam)
		}

		arities = append(arities, "("+strings.Join(parts, " ")+")")
	}

	return strings.Join(arities, " | ")
}

// functionParams returns the parameter names of fn's first (commonly the
// only useful) arity, for argument-position highlighting.
func functionParams(fn *lang.Function) []string {
	if len(fn.Arities) == 0 {
		return nil
	}

	a := fn.Arities[0]
	params := append([]string{}, a.Params...)

	if a.HasRest {
		params = append(params, a.RestParam)
	}

	return params
}

// renderSignatureHint renders signature with the parameter at argIndex
// highlighted.
func renderSignatureHint(signature string, params []string, argIndex int) string {
	if argIndex < 0 || argIndex >= len(params) {
		return hintStyle.Render(signature)
	}

	target := params[argIndex]

	highlighted := lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Bold(true).
		Render(target)

	marker := "arg " + strconv.Itoa(argIndex) + ": "

	return hintStyle.Render(signature) + "  " + hintStyle.Render(marker) + highlighted
}
