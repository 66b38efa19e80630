package parser

import (
	"sort"
	"strings"
)

// Prefix marks the start of an argument value, e.g. "n/".
type Prefix string

// Recognised prefixes. "p/" is the phone of a person and the priority of a homework item.
const (
	PrefixName       Prefix = "n/"
	PrefixPhone      Prefix = "p/"
	PrefixEmail      Prefix = "e/"
	PrefixAddress    Prefix = "a/"
	PrefixTag        Prefix = "t/"
	PrefixModuleCode Prefix = "mc/"
	PrefixGrade      Prefix = "g/"
	PrefixCredits    Prefix = "cr/"
	PrefixSemester   Prefix = "s/"
	PrefixHomework   Prefix = "hw/"
	PrefixDeadline   Prefix = "d/"
	PrefixPriority   Prefix = "p/"
	PrefixContent    Prefix = "c/"
)

// Arguments is the tokenized argument text of one command.
type Arguments struct {
	preamble string
	values   map[Prefix][]string
}

// Preamble returns the trimmed text before the first prefix.
func (a *Arguments) Preamble() string {
	return a.preamble
}

// Value returns the last value given for p. A prefix supplied twice keeps the later value.
func (a *Arguments) Value(p Prefix) (string, bool) {
	vs := a.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// AllValues returns every value given for p in input order.
func (a *Arguments) AllValues(p Prefix) []string {
	return append([]string(nil), a.values[p]...)
}

// Has reports whether every prefix was supplied at least once.
func (a *Arguments) Has(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if len(a.values[p]) == 0 {
			return false
		}
	}
	return true
}

type marker struct {
	prefix Prefix
	start  int
}

// Tokenize splits args on the given prefixes. A prefix only counts at the start of
// args or right after whitespace, so "c/" inside "mc/" is not a match.
func Tokenize(args string, prefixes ...Prefix) *Arguments {
	// Longest first so the longer of two prefixes starting at one position wins.
	sorted := append([]Prefix(nil), prefixes...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	var markers []marker
	for i := 0; i < len(args); i++ {
		if i > 0 && !isSpace(args[i-1]) {
			continue
		}
		for _, p := range sorted {
			if strings.HasPrefix(args[i:], string(p)) {
				markers = append(markers, marker{prefix: p, start: i})
				i += len(p) - 1
				break
			}
		}
	}

	out := &Arguments{values: make(map[Prefix][]string)}
	if len(markers) == 0 {
		out.preamble = strings.TrimSpace(args)
		return out
	}

	out.preamble = strings.TrimSpace(args[:markers[0].start])
	for i, m := range markers {
		end := len(args)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		value := strings.TrimSpace(args[m.start+len(m.prefix) : end])
		out.values[m.prefix] = append(out.values[m.prefix], value)
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
