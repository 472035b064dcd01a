package pets

import "time"

// Species de mascota.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Gender de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func (g Gender) Valid() bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// Pet es el perfil de una mascota. Pertenece en exclusiva a OwnerUserID.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Gender  Gender

	BirthDate *time.Time
	PhotoURL  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
