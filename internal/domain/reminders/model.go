package reminders

import "time"

// Reminder es un recordatorio de cuidado. Al completarse uno recurrente se crea
// el siguiente (ver ToggleCompletion); el completado se conserva como historial.
type Reminder struct {
	ID    string
	PetID string

	Title       string
	Description string

	DueDate        time.Time // día calendario
	RepeatInterval RepeatInterval
	IsCompleted    bool

	// SourceReminderID es el recordatorio cuya compleción generó este. Vacío si fue creado a mano.
	SourceReminderID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
