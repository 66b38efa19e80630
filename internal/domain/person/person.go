// Package person contains the contact record kept in the address book.
package person

import (
	"regexp"
	"strings"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Constraint messages shown to the user.
const (
	NameConstraints    = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	PhoneConstraints   = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	EmailConstraints   = "Emails should be of the format local-part@domain"
	AddressConstraints = "Addresses can take any values, and it should not be blank"
)

var (
	nameRegex  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phoneRegex = regexp.MustCompile(`^\d{3,}$`)
	emailRegex = regexp.MustCompile(`^[\w!#$%&'*+/=?{|}~^.-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?)*$`)
)

// Name is a person's full name.
type Name string

// NewName creates a new Name with validation.
func NewName(value string) (Name, error) {
	n := strings.TrimSpace(value)
	if !nameRegex.MatchString(n) {
		return "", shared.NewDomainError("person", "NewName", shared.ErrInvalidFormat, NameConstraints)
	}
	return Name(n), nil
}

// Phone is a phone number.
type Phone string

// NewPhone creates a new Phone with validation.
func NewPhone(value string) (Phone, error) {
	p := strings.TrimSpace(value)
	if !phoneRegex.MatchString(p) {
		return "", shared.NewDomainError("person", "NewPhone", shared.ErrInvalidFormat, PhoneConstraints)
	}
	return Phone(p), nil
}

// Email is an email address.
type Email string

// NewEmail creates a new Email with validation.
func NewEmail(value string) (Email, error) {
	e := strings.TrimSpace(value)
	if !emailRegex.MatchString(e) {
		return "", shared.NewDomainError("person", "NewEmail", shared.ErrInvalidFormat, EmailConstraints)
	}
	return Email(e), nil
}

// Address is a free-text postal address.
type Address string

// NewAddress creates a new Address with validation.
func NewAddress(value string) (Address, error) {
	a := strings.TrimSpace(value)
	if a == "" {
		return "", shared.NewDomainError("person", "NewAddress", shared.ErrInvalidFormat, AddressConstraints)
	}
	return Address(a), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PERSON
// ══════════════════════════════════════════════════════════════════════════════

// Person is an immutable contact.
type Person struct {
	name    Name
	phone   Phone
	email   Email
	address Address
	tags    shared.Tags
}

// New creates a Person from validated fields.
func New(name Name, phone Phone, email Email, address Address, tags shared.Tags) Person {
	return Person{
		name:    name,
		phone:   phone,
		email:   email,
		address: address,
		tags:    shared.TagsOf(tags...),
	}
}

func (p Person) Name() Name        { return p.name }
func (p Person) Phone() Phone      { return p.phone }
func (p Person) Email() Email      { return p.email }
func (p Person) Address() Address  { return p.address }
func (p Person) Tags() shared.Tags { return p.tags.Clone() }

// IdentityEquals reports whether both records name the same person.
func (p Person) IdentityEquals(other Person) bool {
	return p.name == other.name
}

// FullEquals compares every field.
func (p Person) FullEquals(other Person) bool {
	return p.name == other.name &&
		p.phone == other.phone &&
		p.email == other.email &&
		p.address == other.address &&
		p.tags.Equal(other.tags)
}

// String renders the person for feedback messages.
func (p Person) String() string {
	return string(p.name) + " Phone: " + string(p.phone) + " Email: " + string(p.email) +
		" Address: " + string(p.address) + " Tags: " + p.tags.String()
}

// ══════════════════════════════════════════════════════════════════════════════
// FILTERS
// ══════════════════════════════════════════════════════════════════════════════

// NameContainsKeywords matches persons whose name contains any keyword as a whole word, ignoring case.
func NameContainsKeywords(keywords []string) func(Person) bool {
	return func(p Person) bool {
		return shared.ContainsAnyWord(string(p.name), keywords)
	}
}
