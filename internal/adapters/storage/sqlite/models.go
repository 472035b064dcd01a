package sqlite

import "time"

type petModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	OwnerUserID string `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Species     string `gorm:"not null"`
	Breed       string
	Gender      string
	BirthDate   *time.Time
	PhotoURL    string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (petModel) TableName() string { return "pets" }

type healthModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	PetID     string    `gorm:"index;not null"`
	Date      time.Time `gorm:"not null"`
	WeightKg  float64   `gorm:"not null"`
	Notes     string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (healthModel) TableName() string { return "health_records" }

type diaryModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	PetID     string    `gorm:"index;not null"`
	Date      time.Time `gorm:"not null"`
	Content   string    `gorm:"not null"`
	PhotoURLs []string  `gorm:"serializer:json"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (diaryModel) TableName() string { return "diary_entries" }

type reminderModel struct {
	ID             string `gorm:"primaryKey;size:36"`
	PetID          string `gorm:"index;not null"`
	Title          string `gorm:"not null"`
	Description    string
	DueDate        time.Time `gorm:"not null"`
	RepeatInterval string    `gorm:"not null;default:none"`
	IsCompleted    bool      `gorm:"not null;default:false"`
	// NULL para los creados a mano; SQLite admite varios NULL en un índice único.
	SourceReminderID *string   `gorm:"uniqueIndex"`
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (reminderModel) TableName() string { return "reminders" }
