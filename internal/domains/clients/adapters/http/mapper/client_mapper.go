package mapper

import (
	"time"

	clienttypes "github.com/Apurer/pet-adoption-api/internal/domains/clients/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/clients/domain"
)

// Person is the HTTP representation of a person.
type Person struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	CPF     string `json:"cpf"`
	Contact string `json:"contact"`
}

// Client is the HTTP representation of a client.
type Client struct {
	ID        int64     `json:"id"`
	PeopleID  int64     `json:"people_id"`
	Bonus     bool      `json:"bonus"`
	People    *Person   `json:"people,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromProjection maps a client projection for transport.
func FromProjection(p *clienttypes.ClientProjection) Client {
	if p == nil || p.Entity == nil {
		return Client{}
	}
	return Client{
		ID:        p.Entity.ID,
		PeopleID:  p.Entity.PersonID,
		Bonus:     p.Entity.Bonus,
		People:    FromPerson(p.Entity.Person),
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromPerson maps a person, preserving nil.
func FromPerson(p *domain.Person) *Person {
	if p == nil {
		return nil
	}
	return &Person{ID: p.ID, Name: p.Name, Email: p.Email, CPF: p.CPF, Contact: p.Contact}
}
