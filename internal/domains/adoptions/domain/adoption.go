package domain

import (
	"errors"
	"strings"
)

// Status is the lifecycle state of an adoption request.
type Status string

const (
	StatusPending  Status = "PENDENTE"
	StatusApproved Status = "APROVADO"
)

// Field limits enforced at intake.
const (
	MaxNameLength    = 255
	MaxContactLength = 20
)

var (
	ErrEmptyName         = errors.New("adoption name is required")
	ErrEmptyContact      = errors.New("adoption contact is required")
	ErrEmptyEmail        = errors.New("adoption email is required")
	ErrEmptyCPF          = errors.New("adoption cpf is required")
	ErrEmptyObservations = errors.New("adoption observations are required")
)

// Adoption is a request made by a prospective adopter for one pet.
// The pet reference is not checked at intake.
type Adoption struct {
	ID           int64
	Name         string
	Contact      string
	Email        string
	CPF          string
	Observations string
	PetID        int64
	Status       Status
}

// NewAdoption builds a pending request.
func NewAdoption(name, contact, email, cpf, observations string, petID int64) (*Adoption, error) {
	a := &Adoption{
		Name:         strings.TrimSpace(name),
		Contact:      strings.TrimSpace(contact),
		Email:        strings.TrimSpace(email),
		CPF:          strings.TrimSpace(cpf),
		Observations: strings.TrimSpace(observations),
		PetID:        petID,
		Status:       StatusPending,
	}
	switch {
	case a.Name == "":
		return nil, ErrEmptyName
	case a.Contact == "":
		return nil, ErrEmptyContact
	case a.Email == "":
		return nil, ErrEmptyEmail
	case a.CPF == "":
		return nil, ErrEmptyCPF
	case a.Observations == "":
		return nil, ErrEmptyObservations
	}
	return a, nil
}

// Approve moves the request to APROVADO. Approving twice is allowed.
func (a *Adoption) Approve() {
	a.Status = StatusApproved
}

// MatchesSearch performs the case-insensitive partial match used by review.
func (a *Adoption) MatchesSearch(search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, candidate := range []string{a.Name, a.Email, a.Contact, string(a.Status)} {
		if strings.Contains(strings.ToLower(candidate), search) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (a *Adoption) Clone() *Adoption {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
