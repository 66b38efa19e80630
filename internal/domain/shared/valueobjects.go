// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages.
package shared

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ultistudent/ultistudent/pkg/timeutil"
)

// ═══════════════════════════════════════════════════════════════════════════
// ModuleCode Value Object
// ═══════════════════════════════════════════════════════════════════════════

// ModuleCode identifies a university module, e.g. "CS2103T".
// Shared by CAP entries, homework and notes; compared by value only.
type ModuleCode string

// ModuleCodeConstraints is shown to the user when a module code is rejected.
const ModuleCodeConstraints = "Module codes should begin with two or three letters " +
	"followed by four digits. May end with an optional letter at the back"

var moduleCodeRegex = regexp.MustCompile(`^[A-Za-z]{2,3}\d{4}[A-Za-z]?$`)

// IsValid checks if the module code format is valid.
func (m ModuleCode) IsValid() bool {
	return moduleCodeRegex.MatchString(string(m))
}

// String returns the string representation.
func (m ModuleCode) String() string {
	return string(m)
}

// NewModuleCode creates a new ModuleCode with validation.
// The stored form is always upper case, so "cs2103t" and "CS2103T" are equal.
func NewModuleCode(value string) (ModuleCode, error) {
	mc := ModuleCode(strings.ToUpper(strings.TrimSpace(value)))
	if !mc.IsValid() {
		return "", NewDomainError("shared", "NewModuleCode", ErrInvalidFormat, ModuleCodeConstraints)
	}
	return mc, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Tag Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Tag is a single-word label attached to persons and CAP entries.
type Tag string

// TagConstraints is shown to the user when a tag is rejected.
const TagConstraints = "Tags names should be alphanumeric"

var tagRegex = regexp.MustCompile(`^[\p{L}\p{N}]+$`)

// IsValid checks if the tag is a single alphanumeric word.
func (t Tag) IsValid() bool {
	return tagRegex.MatchString(string(t))
}

// String returns the string representation.
func (t Tag) String() string {
	return string(t)
}

// NewTag creates a new Tag with validation.
func NewTag(value string) (Tag, error) {
	t := Tag(strings.TrimSpace(value))
	if !t.IsValid() {
		return "", NewDomainError("shared", "NewTag", ErrInvalidFormat, TagConstraints)
	}
	return t, nil
}

// Tags is a sorted set of tags without duplicates.
// Treat it as immutable; use Clone before handing it out.
type Tags []Tag

// NewTags validates every value and builds a set from them.
func NewTags(values []string) (Tags, error) {
	tags := make(Tags, 0, len(values))
	for _, v := range values {
		t, err := NewTag(v)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return TagsOf(tags...), nil
}

// TagsOf builds a set from already validated tags.
func TagsOf(tags ...Tag) Tags {
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}

// Equal reports whether both sets hold the same tags.
func (t Tags) Equal(other Tags) bool {
	return slices.Equal(t, other)
}

// Clone returns an independent copy.
func (t Tags) Clone() Tags {
	if t == nil {
		return Tags{}
	}
	return slices.Clone(t)
}

// Strings returns the tags as plain strings.
func (t Tags) Strings() []string {
	out := make([]string, len(t))
	for i, tag := range t {
		out[i] = string(tag)
	}
	return out
}

// String renders the set as "[a][b]".
func (t Tags) String() string {
	var b strings.Builder
	for _, tag := range t {
		b.WriteString("[" + string(tag) + "]")
	}
	return b.String()
}

// ═══════════════════════════════════════════════════════════════════════════
// Date Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Date is a calendar day written as d/m/yyyy.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateConstraints is shown to the user when a date is rejected.
const DateConstraints = "Dates should be valid calendar dates in the format dd/mm/yyyy"

var dateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// NewDate parses and validates a date, including leap years.
// "1/1/2020" and "01/01/2020" produce the same Date.
func NewDate(value string) (Date, error) {
	invalid := NewDomainError("shared", "NewDate", ErrInvalidFormat, DateConstraints)

	m := dateRegex.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return Date{}, invalid
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if month < 1 || month > 12 || day < 1 {
		return Date{}, invalid
	}

	// time.Date normalises overflow (30 Feb -> 2 Mar); a round trip exposes it.
	t := timeutil.Date(year, month, day)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return Date{}, invalid
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// Time returns the start of the day in UTC.
func (d Date) Time() time.Time {
	return timeutil.Date(d.Year, int(d.Month), d.Day)
}

// DaysFrom returns the number of days from now until the date (negative if past).
func (d Date) DaysFrom(now time.Time) int {
	return timeutil.DaysBetween(now, d.Time())
}

// String returns the canonical dd/mm/yyyy form.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// ═══════════════════════════════════════════════════════════════════════════
// Index Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Index is a one-based position in a displayed list.
type Index int

// IndexConstraints is shown to the user when an index is rejected.
const IndexConstraints = "Index is not a non-zero unsigned integer."

// ParseIndex parses a one-based index.
func ParseIndex(value string) (Index, error) {
	s := strings.TrimSpace(value)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || strings.HasPrefix(s, "+") {
		return 0, NewDomainError("shared", "ParseIndex", ErrInvalidFormat, IndexConstraints)
	}
	return Index(n), nil
}

// Zero returns the zero-based position.
func (i Index) Zero() int {
	return int(i) - 1
}

// InRange reports whether the index addresses a list of size n.
func (i Index) InRange(n int) bool {
	return i >= 1 && int(i) <= n
}

// String returns the string representation.
func (i Index) String() string {
	return strconv.Itoa(int(i))
}
