package sqlite

import (
	"errors"
	"fmt"
	"time"

	"pet-care-journal/internal/domain/diary"
	"pet-care-journal/internal/domain/health"
	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/domain/reminders"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open abre (o crea) la base SQLite en path y migra el esquema.
// Los errores de clave única se traducen a gorm.ErrDuplicatedKey.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&petModel{}, &healthModel{}, &diaryModel{}, &reminderModel{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

// Close libera la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type Repos struct {
	Pets      pets.Repository
	Health    health.Repository
	Diary     diary.Repository
	Reminders reminders.Repository
}

func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Pets:      &PetsRepo{db: db},
		Health:    &HealthRepo{db: db},
		Diary:     &DiaryRepo{db: db},
		Reminders: &RemindersRepo{db: db},
	}
}

func notFoundAs(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func affected(res *gorm.DB, notFound error) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}
