package postgres

import (
	"pet-care-journal/internal/domain/diary"
	"pet-care-journal/internal/domain/health"
	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/domain/reminders"

	"github.com/jmoiron/sqlx"
)

type Repos struct {
	Pets      pets.Repository
	Health    health.Repository
	Diary     diary.Repository
	Reminders reminders.Repository
}

func NewRepos(db *sqlx.DB) Repos {
	return Repos{
		Pets:      NewPetsRepo(db),
		Health:    NewHealthRepo(db),
		Diary:     NewDiaryRepo(db),
		Reminders: NewRemindersRepo(db),
	}
}
