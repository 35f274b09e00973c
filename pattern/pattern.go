// Package pattern implements the OSC address-pattern grammar: parsing
// patterns built from literal runs, '?', '*', '[...]' character classes,
// and '{...}' literal alternatives, and compiling them into a canonical
// regular expression used to match concrete OSC addresses.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// methodChars lists every character a literal OSC method part may contain,
// i.e. every printable ASCII character except the reserved set
// (space # * , / ? [ ] { }).
const methodChars = "!\"$%&'()+-.0123456789:;<=>@ABCDEFGHIJKLMNOPQRSTUVWXYZ\\^_`abcdefghijklmnopqrstuvwxyz|~"

func isMethodChar(b byte) bool {
	return strings.IndexByte(methodChars, b) >= 0
}

// ExpressionKind discriminates the arm of an Expression that is populated.
type ExpressionKind int

const (
	ExprLiteral ExpressionKind = iota
	ExprLiterals
	ExprChars
	ExprAnyChar
	ExprAnyString
)

// charRange is an inclusive range of method characters, e.g. A-Z.
type charRange struct {
	start, end byte
}

// Expression is one element of a parsed address-pattern part: a literal
// run, a `{a,b,c}` alternation, a `[...]` character class, `?`, or `*`.
type Expression struct {
	kind     ExpressionKind
	literal  string
	literals []string
	invert   bool
	ranges   []charRange
}

// pushRegexPart appends this expression's canonical regex fragment to sb.
func (e Expression) pushRegexPart(sb *strings.Builder) {
	switch e.kind {
	case ExprLiteral:
		sb.WriteString(regexp.QuoteMeta(e.literal))
	case ExprLiterals:
		sb.WriteString("(?:")
		for i, l := range e.literals {
			if i > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(regexp.QuoteMeta(l))
		}
		sb.WriteByte(')')
	case ExprChars:
		sb.WriteByte('[')
		if e.invert {
			sb.WriteByte('^')
		}
		for _, r := range e.ranges {
			sb.WriteString(regexp.QuoteMeta(string(r.start)))
			if r.start != r.end {
				sb.WriteByte('-')
				sb.WriteString(regexp.QuoteMeta(string(r.end)))
			}
		}
		sb.WriteByte(']')
	case ExprAnyChar:
		sb.WriteByte('.')
	case ExprAnyString:
		sb.WriteString("(?:.*)")
	}
}

// Parse parses a full address-pattern string into its expression tree: one
// slice of Expression per '/'-separated method part.
func Parse(pattern string) ([][]Expression, error) {
	p := &parser{input: pattern}
	tree, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.input) {
		return nil, InvalidPatternError{Reason: fmt.Sprintf("unexpected trailing input: %q", p.input[p.pos:])}
	}
	return tree, nil
}

// AddressPattern is a compiled OSC address pattern: a regular expression
// derived from the pattern grammar, ready to test concrete Address strings
// against. Compiling a pattern never mutates global state; callers that
// want to cache pattern -> AddressPattern lookups own that cache.
type AddressPattern struct {
	source string
	regex  *regexp.Regexp
}

// Compile parses pattern and lowers it to a canonical regular expression,
// anchored with ^ and $: '/' separates parts, Literal is regex-escaped,
// Literals becomes a non-capturing alternation, Chars becomes a character
// class, AnyChar becomes '.', and AnyString becomes '(?:.*)'.
func Compile(pattern string) (AddressPattern, error) {
	tree, err := Parse(pattern)
	if err != nil {
		return AddressPattern{}, err
	}

	var sb strings.Builder
	sb.WriteByte('^')
	for _, part := range tree {
		sb.WriteByte('/')
		for _, expr := range part {
			expr.pushRegexPart(&sb)
		}
	}
	sb.WriteByte('$')

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return AddressPattern{}, InvalidPatternError{Reason: err.Error()}
	}
	return AddressPattern{source: pattern, regex: re}, nil
}

// String returns the canonical regular-expression string this pattern
// compiled to.
func (p AddressPattern) String() string {
	if p.regex == nil {
		return ""
	}
	return p.regex.String()
}

// Source returns the original pattern string this AddressPattern was
// compiled from.
func (p AddressPattern) Source() string { return p.source }

// MatchString reports whether addr matches the compiled pattern. The
// caller is responsible for having already validated addr as a legal OSC
// address: a pattern like "/foo?" will also match the illegal address
// "/foo,", since this is a plain regex test with no address-validity check
// folded in.
func (p AddressPattern) MatchString(addr string) bool {
	if p.regex == nil {
		return false
	}
	return p.regex.MatchString(addr)
}

// InvalidPatternError is returned when a pattern fails to parse, or when
// its derived regular expression fails to compile.
type InvalidPatternError struct {
	Reason string
}

func (e InvalidPatternError) Error() string {
	return fmt.Sprintf("pattern: invalid address pattern: %s", e.Reason)
}
