package domain

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Size is the coarse size class used to filter the catalog.
type Size string

const (
	SizeSmall  Size = "PEQUENO"
	SizeMedium Size = "MEDIO"
	SizeLarge  Size = "GRANDE"
)

// MaxNameLength bounds pet, breed and specie names.
const MaxNameLength = 255

// Breed classifies pets within a specie.
type Breed struct {
	ID   int64
	Name string
}

// Specie groups pets for catalog filtering.
type Specie struct {
	ID   int64
	Name string
}

// Pet represents the aggregate managed by the pets bounded context.
// A pet without a ClientID is available for adoption.
type Pet struct {
	ID       int64
	Name     string
	Age      int
	Weight   float64
	Size     Size
	BreedID  *int64
	Breed    *Breed
	SpecieID *int64
	Specie   *Specie
	ClientID *int64
}

var (
	ErrEmptyName     = errors.New("pet name is required")
	ErrNameTooLong   = errors.New("pet name must not exceed 255 characters")
	ErrInvalidAge    = errors.New("pet age must be greater or equal to zero")
	ErrInvalidWeight = errors.New("pet weight must be greater or equal to zero")
	ErrInvalidSize   = errors.New("pet size must be one of PEQUENO, MEDIO or GRANDE")
	ErrInvalidOwner  = errors.New("owner client id must be positive")
)

// NewPet validates the invariants and builds a new, unowned Pet aggregate.
func NewPet(name string, age int, weight float64, size Size) (*Pet, error) {
	p := &Pet{}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.UpdateMeasurements(age, weight); err != nil {
		return nil, err
	}
	if size != "" {
		if err := p.UpdateSize(size); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = name
	return nil
}

// UpdateMeasurements stores age in years and weight in kilograms.
func (p *Pet) UpdateMeasurements(age int, weight float64) error {
	if age < 0 {
		return ErrInvalidAge
	}
	if weight < 0 {
		return ErrInvalidWeight
	}
	p.Age = age
	p.Weight = weight
	return nil
}

// UpdateSize validates known size classes.
func (p *Pet) UpdateSize(size Size) error {
	parsed, err := ParseSize(string(size))
	if err != nil {
		return err
	}
	p.Size = parsed
	return nil
}

// ParseSize normalizes user supplied size values.
func ParseSize(raw string) (Size, error) {
	switch size := Size(strings.ToUpper(strings.TrimSpace(raw))); size {
	case SizeSmall, SizeMedium, SizeLarge:
		return size, nil
	default:
		return "", ErrInvalidSize
	}
}

// UpdateBreed links the pet to a breed, or clears the link when nil.
func (p *Pet) UpdateBreed(breed *Breed) {
	if breed == nil {
		p.Breed = nil
		p.BreedID = nil
		return
	}
	copy := *breed
	id := breed.ID
	p.Breed = &copy
	p.BreedID = &id
}

// UpdateSpecie links the pet to a specie, or clears the link when nil.
func (p *Pet) UpdateSpecie(specie *Specie) {
	if specie == nil {
		p.Specie = nil
		p.SpecieID = nil
		return
	}
	copy := *specie
	id := specie.ID
	p.Specie = &copy
	p.SpecieID = &id
}

// IsAvailable reports whether the pet can still be adopted.
func (p *Pet) IsAvailable() bool {
	return p.ClientID == nil
}

// AssignOwner records the adopting client. An existing owner is overwritten.
func (p *Pet) AssignOwner(clientID int64) error {
	if clientID <= 0 {
		return ErrInvalidOwner
	}
	p.ClientID = &clientID
	return nil
}

// MatchesSearch reports whether term is a case-insensitive substring of the
// name, age, weight or breed name.
func (p *Pet) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	candidates := []string{
		p.Name,
		strconv.Itoa(p.Age),
		strconv.FormatFloat(p.Weight, 'f', -1, 64),
	}
	if p.Breed != nil {
		candidates = append(candidates, p.Breed.Name)
	}
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), term) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the aggregate.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	copy := *p
	copy.BreedID = cloneID(p.BreedID)
	copy.SpecieID = cloneID(p.SpecieID)
	copy.ClientID = cloneID(p.ClientID)
	if p.Breed != nil {
		breed := *p.Breed
		copy.Breed = &breed
	}
	if p.Specie != nil {
		specie := *p.Specie
		copy.Specie = &specie
	}
	return &copy
}

// NewBreed validates a breed name.
func NewBreed(name string) (*Breed, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Breed{Name: name}, nil
}

// NewSpecie validates a specie name.
func NewSpecie(name string) (*Specie, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Specie{Name: name}, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
