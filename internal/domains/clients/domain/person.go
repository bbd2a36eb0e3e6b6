package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("person name is required")
	ErrEmptyEmail   = errors.New("person email is required")
	ErrEmptyCPF     = errors.New("person cpf is required")
	ErrInvalidOwner = errors.New("client must reference a person")
)

// Person is the identity captured from an approved adoption request.
// Nothing enforces one person per CPF.
type Person struct {
	ID      int64
	Name    string
	Email   string
	CPF     string
	Contact string
}

// NewPerson builds a person ensuring required invariants.
func NewPerson(name, email, cpf, contact string) (*Person, error) {
	p := &Person{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		CPF:     strings.TrimSpace(cpf),
		Contact: strings.TrimSpace(contact),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the person invariants.
func (p *Person) Validate() error {
	switch {
	case p.Name == "":
		return ErrEmptyName
	case p.Email == "":
		return ErrEmptyEmail
	case p.CPF == "":
		return ErrEmptyCPF
	}
	return nil
}

// Client is an adopter. Bonus has no behavior beyond storage.
type Client struct {
	ID       int64
	PersonID int64
	Bonus    bool
	Person   *Person
}

// NewClient creates a client for the person with the bonus flag set.
func NewClient(personID int64) (*Client, error) {
	if personID <= 0 {
		return nil, ErrInvalidOwner
	}
	return &Client{PersonID: personID, Bonus: true}, nil
}
