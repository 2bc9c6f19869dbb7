package main

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the persisted auth user record.
// auth.go (handlers) never returns it to the client beyond the bare id.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;size:320;not null"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TaskRecord is the persisted task row. Version counts successful updates
// so conditional writes can reject stale ones.
type TaskRecord struct {
	ID          string    `gorm:"primaryKey;type:text"`
	UserID      string    `gorm:"index;type:text;not null"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	Completed   bool      `gorm:"not null;default:false"`
	Version     int       `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (TaskRecord) TableName() string { return "tasks" }

func (t *TaskRecord) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

/* ===================== Public JSON (API) ====================== */

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"userId"`
	Version     int    `json:"version"`
	CreatedAt   string `json:"createdAt"` // ISO 8601
}

func toPublic(t TaskRecord) Task {
	return Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.UserID,
		Version:     t.Version,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
