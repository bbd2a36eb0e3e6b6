package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptySolicitationID = errors.New("solicitation id is required")
	ErrInvalidClient       = errors.New("solicitation must reference a client")
)

// Documents are the uploaded file ids a client must provide after approval.
type Documents struct {
	CPF             *int64
	RG              *int64
	DocumentAddress *int64
	TermAdoption    *int64
}

// IDs lists the referenced file ids, skipping unset slots.
func (d Documents) IDs() []int64 {
	ids := make([]int64, 0, 4)
	for _, id := range []*int64{d.CPF, d.RG, d.DocumentAddress, d.TermAdoption} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}

// Solicitation tracks the documents requested from a newly approved client.
type Solicitation struct {
	ID       string
	ClientID int64
	Documents
}

// NewSolicitation opens an empty solicitation for clientID.
func NewSolicitation(id string, clientID int64) (*Solicitation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptySolicitationID
	}
	if clientID <= 0 {
		return nil, ErrInvalidClient
	}
	return &Solicitation{ID: id, ClientID: clientID}, nil
}

// Attach records the provided documents, keeping previously attached ones for unset slots.
func (s *Solicitation) Attach(docs Documents) {
	if docs.CPF != nil {
		s.CPF = copyID(docs.CPF)
	}
	if docs.RG != nil {
		s.RG = copyID(docs.RG)
	}
	if docs.DocumentAddress != nil {
		s.DocumentAddress = copyID(docs.DocumentAddress)
	}
	if docs.TermAdoption != nil {
		s.TermAdoption = copyID(docs.TermAdoption)
	}
}

// Complete reports whether every required document is attached.
func (s *Solicitation) Complete() bool {
	return s.CPF != nil && s.RG != nil && s.DocumentAddress != nil && s.TermAdoption != nil
}

// Clone returns a deep copy.
func (s *Solicitation) Clone() *Solicitation {
	if s == nil {
		return nil
	}
	c := Solicitation{ID: s.ID, ClientID: s.ClientID}
	c.Attach(s.Documents)
	return &c
}

func copyID(id *int64) *int64 {
	v := *id
	return &v
}
