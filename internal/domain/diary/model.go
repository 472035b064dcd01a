package diary

import "time"

// Entry es una nota diaria de una mascota con fotos opcionales.
// Date es un día calendario; varias entradas pueden compartir día.
type Entry struct {
	ID    string
	PetID string

	Date      time.Time
	Content   string
	PhotoURLs []string // en orden de subida

	CreatedAt time.Time
	UpdatedAt time.Time
}
