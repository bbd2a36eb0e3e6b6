package types

// ListPetsInput carries the optional catalog filters.
type ListPetsInput struct {
	Search   string
	Age      *int
	Size     *string
	Weight   *float64
	SpecieID *int64
}

// PetIdentifier addresses a single pet.
type PetIdentifier struct {
	ID int64
}

// RegisterPetInput is the command used to add a pet to the catalog.
type RegisterPetInput struct {
	Name     string
	Age      int
	Weight   float64
	Size     string
	BreedID  *int64
	SpecieID *int64
}

// RegisterBreedInput adds a breed to the catalog.
type RegisterBreedInput struct {
	Name string
}

// RegisterSpecieInput adds a specie to the catalog.
type RegisterSpecieInput struct {
	Name string
}
