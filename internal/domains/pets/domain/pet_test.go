package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPet_ValidatesInvariants(t *testing.T) {
	_, err := NewPet(" ", 1, 2, SizeSmall)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewPet(strings.Repeat("a", 256), 1, 2, SizeSmall)
	require.ErrorIs(t, err, ErrNameTooLong)

	_, err = NewPet("Rex", -1, 2, SizeSmall)
	require.ErrorIs(t, err, ErrInvalidAge)

	_, err = NewPet("Rex", 1, 2, Size("HUGE"))
	require.ErrorIs(t, err, ErrInvalidSize)

	pet, err := NewPet("Rex", 3, 12.5, Size("medio"))
	require.NoError(t, err)
	assert.Equal(t, SizeMedium, pet.Size)
	assert.True(t, pet.IsAvailable())
}

func TestAssignOwner_OverwritesExistingOwner(t *testing.T) {
	pet, err := NewPet("Rex", 3, 12.5, SizeLarge)
	require.NoError(t, err)

	require.NoError(t, pet.AssignOwner(4))
	require.NoError(t, pet.AssignOwner(9))
	assert.Equal(t, int64(9), *pet.ClientID)
	assert.False(t, pet.IsAvailable())
	assert.ErrorIs(t, pet.AssignOwner(0), ErrInvalidOwner)
}

func TestFilter_Matches(t *testing.T) {
	pet, err := NewPet("Thor", 4, 20, SizeLarge)
	require.NoError(t, err)
	pet.UpdateBreed(&Breed{ID: 2, Name: "Labrador"})
	pet.UpdateSpecie(&Specie{ID: 1, Name: "Cachorro"})

	age := 4
	otherAge := 5
	size := SizeLarge
	specie := int64(1)
	weight := 20.0

	assert.True(t, Filter{}.Matches(pet))
	assert.True(t, Filter{Search: "labr"}.Matches(pet))
	assert.True(t, Filter{Search: "THO"}.Matches(pet))
	assert.True(t, Filter{Search: "20"}.Matches(pet))
	assert.True(t, Filter{Age: &age, Size: &size, SpecieID: &specie, Weight: &weight}.Matches(pet))
	assert.False(t, Filter{Age: &otherAge}.Matches(pet))
	assert.False(t, Filter{Search: "gato"}.Matches(pet))
}
