package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModuleCode(t *testing.T) {
	tests := []struct {
		input string
		want  ModuleCode
		valid bool
	}{
		{"CS2103T", "CS2103T", true},
		{"cs2103t", "CS2103T", true},
		{" MA1521 ", "MA1521", true},
		{"GER1000", "GER1000", true},
		{"C2103", "", false},
		{"CS210", "", false},
		{"ABCD1234", "", false},
		{"CS2103TT", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewModuleCode(tt.input)
			if !tt.valid {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidFormat))
				assert.Equal(t, ModuleCodeConstraints, Feedback(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModuleCode_CaseInsensitiveEquality(t *testing.T) {
	upper, err := NewModuleCode("CS2103T")
	require.NoError(t, err)
	lower, err := NewModuleCode("cs2103t")
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
}

func TestNewDate(t *testing.T) {
	invalid := []string{
		"",
		" ",
		"32/01/2019",
		"30/02/2019",
		"29/02/2019",
		"15/13/2019",
		"15/13/01",
		"01/01/20",
		"0/01/2020",
		"1-1-2020",
	}
	for _, in := range invalid {
		_, err := NewDate(in)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", in)
	}

	valid := []string{"01/01/2020", "01/1/2020", "1/01/2020", "29/02/2020"}
	for _, in := range valid {
		_, err := NewDate(in)
		assert.NoError(t, err, "input %q", in)
	}
}

func TestDate_Canonical(t *testing.T) {
	a, err := NewDate("1/1/2020")
	require.NoError(t, err)
	b, err := NewDate("01/01/2020")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "01/01/2020", a.String())
	assert.Equal(t, time.January, a.Month)
}

func TestDate_DaysFrom(t *testing.T) {
	d, err := NewDate("10/03/2020")
	require.NoError(t, err)

	now := time.Date(2020, 3, 7, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, d.DaysFrom(now))
	assert.Equal(t, -1, d.DaysFrom(time.Date(2020, 3, 11, 0, 0, 0, 0, time.UTC)))
}

func TestNewTags(t *testing.T) {
	tags, err := NewTags([]string{"friends", "cs", "friends"})
	require.NoError(t, err)
	assert.Equal(t, Tags{"cs", "friends"}, tags)
	assert.Equal(t, "[cs][friends]", tags.String())

	_, err = NewTags([]string{"two words"})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	empty, err := NewTags(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTags_EqualIgnoresOrder(t *testing.T) {
	assert.True(t, TagsOf("b", "a").Equal(TagsOf("a", "b")))
	assert.False(t, TagsOf("a").Equal(TagsOf("a", "b")))
}

func TestParseIndex(t *testing.T) {
	idx, err := ParseIndex(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, Index(3), idx)
	assert.Equal(t, 2, idx.Zero())
	assert.True(t, idx.InRange(3))
	assert.False(t, idx.InRange(2))

	for _, in := range []string{"", "0", "-1", "+1", "a", "1 2"} {
		_, err := ParseIndex(in)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", in)
	}
}

func TestFeedback(t *testing.T) {
	err := NewDomainError("cap", "Add", ErrDuplicate, "This cap entry already exists")
	wrapped := WrapError("logic", "Execute", ErrStorage, "Could not save data", err)

	assert.Equal(t, "This cap entry already exists", Feedback(err))
	assert.Equal(t, "Could not save data", Feedback(wrapped))
	assert.True(t, errors.Is(wrapped, ErrStorage))
	assert.True(t, errors.Is(wrapped, ErrDuplicate))
	assert.Equal(t, "logic.Execute: Could not save data: cap.Add: This cap entry already exists", wrapped.Error())
	assert.Equal(t, "", Feedback(nil))
	assert.Equal(t, "plain", Feedback(errors.New("plain")))
}
