// Package capentry contains the CAP (cumulative average point) manager's records.
package capentry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GRADE
// ══════════════════════════════════════════════════════════════════════════════

// Grade is a letter grade obtained for a module.
type Grade string

// GradeConstraints is shown to the user when a grade is rejected.
const GradeConstraints = "Module grades should be one of A+, A, A-, B+, B, B-, C+, C, D+, D, F, S or U"

// Grade points per letter grade. S and U are ungraded and carry no point.
var gradePoints = map[Grade]float64{
	"A+": 5.0,
	"A":  5.0,
	"A-": 4.5,
	"B+": 4.0,
	"B":  3.5,
	"B-": 3.0,
	"C+": 2.5,
	"C":  2.0,
	"D+": 1.5,
	"D":  1.0,
	"F":  0.0,
}

var ungraded = map[Grade]bool{"S": true, "U": true}

// NewGrade creates a new Grade with validation. Input is case-insensitive.
func NewGrade(value string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := gradePoints[g]; !ok && !ungraded[g] {
		return "", shared.NewDomainError("capentry", "NewGrade", shared.ErrInvalidFormat, GradeConstraints)
	}
	return g, nil
}

// Point returns the grade point. ok is false for S/U grades.
func (g Grade) Point() (point float64, ok bool) {
	point, ok = gradePoints[g]
	return point, ok
}

// IsGraded reports whether the grade counts toward CAP.
func (g Grade) IsGraded() bool {
	_, ok := gradePoints[g]
	return ok
}

// String returns the string representation.
func (g Grade) String() string {
	return string(g)
}

// ══════════════════════════════════════════════════════════════════════════════
// CREDITS
// ══════════════════════════════════════════════════════════════════════════════

// Credits is the number of modular credits a module is worth.
type Credits int

// CreditsConstraints is shown to the user when credits are rejected.
const CreditsConstraints = "Modular credits should be positive whole numbers of 1 or 2 digits"

var creditsRegex = regexp.MustCompile(`^\d{1,2}$`)

// NewCredits creates a new Credits value with validation.
func NewCredits(value string) (Credits, error) {
	s := strings.TrimSpace(value)
	if !creditsRegex.MatchString(s) {
		return 0, shared.NewDomainError("capentry", "NewCredits", shared.ErrInvalidFormat, CreditsConstraints)
	}
	n, _ := strconv.Atoi(s)
	if n < 1 {
		return 0, shared.NewDomainError("capentry", "NewCredits", shared.ErrInvalidFormat, CreditsConstraints)
	}
	return Credits(n), nil
}

// Int returns the underlying int value.
func (c Credits) Int() int {
	return int(c)
}

// String returns the string representation.
func (c Credits) String() string {
	return strconv.Itoa(int(c))
}

// ══════════════════════════════════════════════════════════════════════════════
// SEMESTER
// ══════════════════════════════════════════════════════════════════════════════

// Semester is the academic term a module was taken in, e.g. "Y2S1".
type Semester string

// SemesterConstraints is shown to the user when a semester is rejected.
const SemesterConstraints = "Semesters should be of the format YxSy, where x is the year (1-6) and y the semester (1-2)"

var semesterRegex = regexp.MustCompile(`^Y[1-6]S[1-2]$`)

// NewSemester creates a new Semester with validation. Input is case-insensitive.
func NewSemester(value string) (Semester, error) {
	s := Semester(strings.ToUpper(strings.TrimSpace(value)))
	if !semesterRegex.MatchString(string(s)) {
		return "", shared.NewDomainError("capentry", "NewSemester", shared.ErrInvalidFormat, SemesterConstraints)
	}
	return s, nil
}

// String returns the string representation.
func (s Semester) String() string {
	return string(s)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTRY
// ══════════════════════════════════════════════════════════════════════════════

// Entry is one module result in the CAP manager. It is immutable.
type Entry struct {
	moduleCode shared.ModuleCode
	grade      Grade
	credits    Credits
	semester   Semester
	tags       shared.Tags
}

// NewEntry creates an Entry from validated fields.
func NewEntry(code shared.ModuleCode, grade Grade, credits Credits, semester Semester, tags shared.Tags) Entry {
	return Entry{
		moduleCode: code,
		grade:      grade,
		credits:    credits,
		semester:   semester,
		tags:       shared.TagsOf(tags...),
	}
}

func (e Entry) ModuleCode() shared.ModuleCode { return e.moduleCode }
func (e Entry) Grade() Grade                  { return e.grade }
func (e Entry) Credits() Credits              { return e.credits }
func (e Entry) Semester() Semester            { return e.semester }
func (e Entry) Tags() shared.Tags             { return e.tags.Clone() }

// IdentityEquals reports whether both entries are for the same module.
func (e Entry) IdentityEquals(other Entry) bool {
	return e.moduleCode == other.moduleCode
}

// FullEquals compares every field.
func (e Entry) FullEquals(other Entry) bool {
	return e.moduleCode == other.moduleCode &&
		e.grade == other.grade &&
		e.credits == other.credits &&
		e.semester == other.semester &&
		e.tags.Equal(other.tags)
}

// String renders the entry for feedback messages.
func (e Entry) String() string {
	return fmt.Sprintf("%s; %s; %dMC; %s Tags: %s", e.moduleCode, e.grade, e.credits, e.semester, e.tags)
}

// ══════════════════════════════════════════════════════════════════════════════
// CAP COMPUTATION
// ══════════════════════════════════════════════════════════════════════════════

// Summary is the aggregate over a set of entries.
type Summary struct {
	CAP            float64
	GradedCredits  int
	TotalCredits   int
	HasGradedEntry bool
}

// Compute folds entries into a CAP: sum(point * credits) / sum(credits) over graded entries.
// It keeps no state between calls.
func Compute(entries []Entry) Summary {
	var s Summary
	var weighted float64
	for _, e := range entries {
		s.TotalCredits += e.credits.Int()
		point, ok := e.grade.Point()
		if !ok {
			continue
		}
		weighted += point * float64(e.credits)
		s.GradedCredits += e.credits.Int()
	}
	if s.GradedCredits > 0 {
		s.CAP = weighted / float64(s.GradedCredits)
		s.HasGradedEntry = true
	}
	return s
}

// String renders the CAP with two decimals.
func (s Summary) String() string {
	if !s.HasGradedEntry {
		return "CAP: N/A"
	}
	return fmt.Sprintf("CAP: %.2f (%d MCs)", s.CAP, s.GradedCredits)
}

// ══════════════════════════════════════════════════════════════════════════════
// FILTERS
// ══════════════════════════════════════════════════════════════════════════════

// ModuleCodeContainsKeywords matches entries whose module code equals any keyword, ignoring case.
func ModuleCodeContainsKeywords(keywords []string) func(Entry) bool {
	return func(e Entry) bool {
		return shared.ContainsAnyWord(string(e.moduleCode), keywords)
	}
}
