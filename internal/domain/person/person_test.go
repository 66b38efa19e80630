package person

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

func TestValueObjects(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) error
		valid []string
		bad   []string
	}{
		{
			name:  "name",
			fn:    func(s string) error { _, err := NewName(s); return err },
			valid: []string{"Alex Yeoh", "peter jack", "12345", "Capital Tan"},
			bad:   []string{"", " ", "^", "peter*"},
		},
		{
			name:  "phone",
			fn:    func(s string) error { _, err := NewPhone(s); return err },
			valid: []string{"911", "93121534", "124293842033123"},
			bad:   []string{"", "91", "phone", "9011p041", "9312 1534"},
		},
		{
			name:  "email",
			fn:    func(s string) error { _, err := NewEmail(s); return err },
			valid: []string{"alexyeoh@example.com", "a.b+c@x.co", "PeterJack_1190@example.com", "a@bc"},
			bad:   []string{"", "@example.com", "peterjack@", "peter jack@example.com", "peterjack@-example.com"},
		},
		{
			name:  "address",
			fn:    func(s string) error { _, err := NewAddress(s); return err },
			valid: []string{"Blk 456, Den Road, #01-355", "-"},
			bad:   []string{"", "   "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.valid {
				assert.NoError(t, tt.fn(v), v)
			}
			for _, v := range tt.bad {
				assert.ErrorIs(t, tt.fn(v), shared.ErrInvalidFormat, v)
			}
		})
	}
}

func TestPerson_Equality(t *testing.T) {
	alice := New("Alice Pauline", "94351253", "alice@example.com", "123, Jurong West", shared.TagsOf("friends"))
	aliceMoved := New("Alice Pauline", "94351253", "alice@example.com", "1 Kent Ridge", shared.TagsOf("friends"))
	bob := New("Bob Choo", "94351253", "alice@example.com", "123, Jurong West", shared.TagsOf("friends"))

	assert.True(t, alice.IdentityEquals(aliceMoved))
	assert.False(t, alice.FullEquals(aliceMoved))
	assert.False(t, alice.IdentityEquals(bob))
}

func TestPerson_TagsAreCopied(t *testing.T) {
	p := New("Alice", "123", "a@b.c", "x", shared.TagsOf("a", "b"))
	tags := p.Tags()
	tags[0] = "zzz"
	assert.Equal(t, shared.Tags{"a", "b"}, p.Tags())
}

func TestNameContainsKeywords(t *testing.T) {
	p := New("Alice Pauline", "123", "a@b.c", "x", nil)

	assert.True(t, NameContainsKeywords([]string{"alice"})(p))
	assert.True(t, NameContainsKeywords([]string{"Bob", "PAULINE"})(p))
	assert.False(t, NameContainsKeywords([]string{"Ali"})(p))
	assert.False(t, NameContainsKeywords(nil)(p))
}
