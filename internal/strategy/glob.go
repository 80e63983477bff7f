package strategy

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/quantmind-br/assetmanifest/internal/manifest"
)

// compilePattern compiles a POSIX fnmatch pattern (no FNM_PATHNAME, so '*'
// also matches '/'). gobwas/glob speaks a different dialect: braces are
// alternation and a bracket holds either one range or a plain list. The
// pattern is rewritten into an equivalent gobwas expression first:
//   - literals, including '{', '}' and ',', are escaped
//   - a '[' without a closing ']' is a literal
//   - bracket expressions become an alternation of single ranges
func compilePattern(pattern string) (glob.Glob, error) {
	expr, ok := translate(pattern)
	if !ok {
		return never{}, nil
	}
	g, err := glob.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %v", manifest.ErrConfiguration, pattern, err)
	}
	return g, nil
}

// Match reports whether name matches the fnmatch pattern
func Match(pattern, name string) (bool, error) {
	g, err := compilePattern(pattern)
	if err != nil {
		return false, err
	}
	return g.Match(name), nil
}

// never is the compiled form of a pattern holding an empty bracket
// expression such as [z-a]
type never struct{}

func (never) Match(string) bool { return false }

type runeRange struct {
	lo, hi rune
}

// universe is every rune gobwas can carry in a pattern: NUL terminates its
// lexer and surrogates are not valid in strings.
var universe = []runeRange{{1, 0xD7FF}, {0xE000, 0x10FFFF}}

var namedClasses = map[string][]runeRange{
	"alnum":  {{'0', '9'}, {'A', 'Z'}, {'a', 'z'}},
	"alpha":  {{'A', 'Z'}, {'a', 'z'}},
	"blank":  {{'\t', '\t'}, {' ', ' '}},
	"cntrl":  {{1, 0x1F}, {0x7F, 0x7F}},
	"digit":  {{'0', '9'}},
	"graph":  {{'!', '~'}},
	"lower":  {{'a', 'z'}},
	"print":  {{' ', '~'}},
	"punct":  {{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}},
	"space":  {{'\t', '\r'}, {' ', ' '}},
	"upper":  {{'A', 'Z'}},
	"xdigit": {{'0', '9'}, {'A', 'F'}, {'a', 'f'}},
}

// translate returns the gobwas expression for pattern. ok is false when
// the pattern can never match.
func translate(pattern string) (expr string, ok bool) {
	runes := []rune(pattern)
	var b strings.Builder

	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*', '?':
			b.WriteRune(r)
		case '\\':
			if i+1 < len(runes) {
				i++
			}
			b.WriteString(escapeRune(runes[i]))
		case '[':
			set, negate, end, closed := parseBracket(runes, i+1)
			if !closed {
				b.WriteString(escapeRune('['))
				continue
			}
			alts := bracketAlternatives(set, negate)
			switch len(alts) {
			case 0:
				return "", false
			case 1:
				b.WriteString(alts[0])
			default:
				b.WriteString("{" + strings.Join(alts, ",") + "}")
			}
			i = end
		default:
			b.WriteString(escapeRune(r))
		}
	}
	return b.String(), true
}

// parseBracket reads a bracket expression starting after its '['. It
// returns the member ranges, whether the expression is negated, and the
// index of the closing ']'. closed is false when there is none.
func parseBracket(runes []rune, i int) (set []runeRange, negate bool, end int, closed bool) {
	if i < len(runes) && (runes[i] == '!' || runes[i] == '^') {
		negate = true
		i++
	}

	first := true
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == ']' && !first:
			return set, negate, i, true
		case c == '[' && i+1 < len(runes) && runes[i+1] == ':':
			if j := classNameEnd(runes, i+2); j >= 0 {
				if named, ok := namedClasses[string(runes[i+2:j])]; ok {
					set = append(set, named...)
					i = j + 2
					first = false
					continue
				}
			}
		case c == '\\' && i+1 < len(runes):
			i++
			c = runes[i]
		}
		first = false
		i++

		if i+1 < len(runes) && runes[i] == '-' && runes[i+1] != ']' {
			hi := runes[i+1]
			i += 2
			if hi == '\\' && i < len(runes) {
				hi = runes[i]
				i++
			}
			set = append(set, runeRange{c, hi})
			continue
		}
		set = append(set, runeRange{c, c})
	}
	return nil, false, 0, false
}

// classNameEnd returns the index of the ':' closing a "[:name:]" class
func classNameEnd(runes []rune, i int) int {
	for ; i+1 < len(runes); i++ {
		if runes[i] == ':' && runes[i+1] == ']' {
			return i
		}
		if runes[i] == ']' {
			return -1
		}
	}
	return -1
}

// bracketAlternatives renders the members of a bracket expression as
// single-character gobwas terms
func bracketAlternatives(set []runeRange, negate bool) []string {
	members := intersect(merge(set), universe)
	if negate {
		members = subtract(universe, members)
	}

	var alts []string
	for _, r := range members {
		alts = append(alts, rangeTerms(r)...)
	}
	return alts
}

// rangeTerms renders r as gobwas terms. A range may not start with '!'
// (negation) or ']' (close), so those are split off as literals.
func rangeTerms(r runeRange) []string {
	var terms []string
	for r.lo <= r.hi && (r.lo == '!' || r.lo == ']') {
		terms = append(terms, escapeRune(r.lo))
		r.lo++
	}
	switch {
	case r.lo > r.hi:
		return terms
	case r.lo == r.hi:
		return append(terms, escapeRune(r.lo))
	default:
		return append(terms, "["+string(r.lo)+"-"+string(r.hi)+"]")
	}
}

func escapeRune(r rune) string {
	if strings.ContainsRune(`*?[]{},\`, r) {
		return `\` + string(r)
	}
	return string(r)
}

// merge sorts ranges and joins overlapping or adjacent ones. Reversed
// ranges are empty and dropped.
func merge(set []runeRange) []runeRange {
	sorted := make([]runeRange, 0, len(set))
	for _, r := range set {
		if r.lo <= r.hi {
			sorted = append(sorted, r)
		}
	}
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].lo < sorted[j-1].lo; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	var out []runeRange
	for _, r := range sorted {
		if n := len(out); n > 0 && r.lo <= out[n-1].hi+1 {
			out[n-1].hi = max(out[n-1].hi, r.hi)
			continue
		}
		out = append(out, r)
	}
	return out
}

func intersect(a, b []runeRange) []runeRange {
	var out []runeRange
	for _, x := range a {
		for _, y := range b {
			lo, hi := max(x.lo, y.lo), min(x.hi, y.hi)
			if lo <= hi {
				out = append(out, runeRange{lo, hi})
			}
		}
	}
	return out
}

// subtract returns from minus set; both must be sorted and merged
func subtract(from, set []runeRange) []runeRange {
	var out []runeRange
	for _, u := range from {
		cur := u.lo
		for _, s := range set {
			if s.hi < cur || s.lo > u.hi {
				continue
			}
			if s.lo > cur {
				out = append(out, runeRange{cur, s.lo - 1})
			}
			cur = s.hi + 1
		}
		if cur <= u.hi {
			out = append(out, runeRange{cur, u.hi})
		}
	}
	return out
}
