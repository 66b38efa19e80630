package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

func TestNewContent(t *testing.T) {
	c, err := NewContent("Revise graphs chapter 4")
	require.NoError(t, err)
	assert.Equal(t, "Revise graphs chapter 4", c.String())

	for _, in := range []string{"", "  ", "no-dashes", "what?"} {
		_, err := NewContent(in)
		assert.ErrorIs(t, err, shared.ErrInvalidFormat, in)
	}
}

func TestNote_IdentityIsContent(t *testing.T) {
	cs, _ := shared.NewModuleCode("CS2103T")
	ma, _ := shared.NewModuleCode("MA1521")

	a := New(cs, "Read chapter 1")
	b := New(ma, "Read chapter 1")

	assert.True(t, a.IdentityEquals(b))
	assert.False(t, a.FullEquals(b))
}

func TestMatchesKeywords(t *testing.T) {
	cs, _ := shared.NewModuleCode("CS2103T")
	n := New(cs, "Read chapter 1")

	assert.True(t, MatchesKeywords([]string{"cs2103t"})(n))
	assert.True(t, MatchesKeywords([]string{"CHAPTER"})(n))
	assert.False(t, MatchesKeywords([]string{"chap"})(n))
}
