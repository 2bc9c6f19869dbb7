package main

import "errors"

// Store errors. Handlers map these onto 404/409; anything else is a 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrStaleVersion = errors.New("stale version")
)

// TaskPatch carries the fields a PUT may replace. Nil means leave as is.
// ExpectedVersion, when set, makes the write conditional.
type TaskPatch struct {
	Title           *string
	Description     *string
	Completed       *bool
	ExpectedVersion *int
}

// TaskStore is the persistence surface the handlers talk to.
// Two implementations: gormStore (Postgres) and memoryStore (no-DB mode, tests).
type TaskStore interface {
	TasksByUser(userID string) ([]TaskRecord, error)
	CreateTask(rec *TaskRecord) error
	UpdateTask(id string, patch TaskPatch) (TaskRecord, error)
	DeleteTask(id string, expectedVersion *int) error

	CreateUser(u *User) error
	UserByUsername(username string) (User, error)
	UserExists(email, username string) (bool, error)
}
