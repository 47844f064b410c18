package indexer

import "regexp"

// Character classes shared by the definition pattern. Word characters and
// whitespace are Unicode-aware; the first character of every type token and of
// the captured name stays ASCII.
const (
	wordClass  = `\p{L}\p{N}_`
	spaceClass = `[\s\v\x1c-\x1f\x{85}\p{Z}]`
)

// definitionPattern recognizes a single-line function definition header:
// leading whitespace, one or more whitespace-terminated type tokens, the
// function name, a parameter list without ';', and either end of line or '{'.
//
// Lines are matched without their terminator, so '$' is end of text.
var definitionPattern = regexp.MustCompile(
	`^` + spaceClass + `*` +
		`(?:[a-zA-Z_][` + wordClass + `:<>]*` + spaceClass + `+)+` +
		`([a-zA-Z_][` + wordClass + `]*)` +
		spaceClass + `*\([^;]*\)` + spaceClass + `*` +
		`(?:\{|$)`,
)

// LineMatcher decides whether a line of text looks like a function definition.
type LineMatcher interface {
	// Match returns the declared function name and true when line is a
	// definition header.
	Match(line string) (string, bool)
}

// regexpMatcher implements LineMatcher with the package definition pattern.
type regexpMatcher struct{}

// NewLineMatcher returns the heuristic definition matcher.
func NewLineMatcher() LineMatcher {
	return regexpMatcher{}
}

func (regexpMatcher) Match(line string) (string, bool) {
	return MatchLine(line)
}

// MatchLine applies the definition heuristic to one line. The line must not
// carry its terminator. Control statements and macro invocations that share
// the shape of a definition are reported too.
func MatchLine(line string) (string, bool) {
	m := definitionPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
