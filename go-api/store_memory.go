package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore keeps everything in process memory. It backs the API when
// DATABASE_URL is unset (local hacking) and the handler tests.
type memoryStore struct {
	mu    sync.Mutex
	tasks map[string]TaskRecord
	order []string // task ids in insertion order, for natural listing
	users map[string]User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		tasks: map[string]TaskRecord{},
		users: map[string]User{},
	}
}

func (s *memoryStore) TasksByUser(userID string) ([]TaskRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TaskRecord, 0)
	for _, id := range s.order {
		if rec, ok := s.tasks[id]; ok && rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *memoryStore) CreateTask(rec *TaskRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Version == 0 {
		rec.Version = 1
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.tasks[rec.ID] = *rec
	s.order = append(s.order, rec.ID)
	return nil
}

func (s *memoryStore) UpdateTask(id string, patch TaskPatch) (TaskRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tasks[id]
	if !ok {
		return TaskRecord{}, ErrNotFound
	}
	if patch.ExpectedVersion != nil && *patch.ExpectedVersion != rec.Version {
		return TaskRecord{}, ErrStaleVersion
	}
	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.Completed != nil {
		rec.Completed = *patch.Completed
	}
	rec.Version++
	rec.UpdatedAt = time.Now().UTC()
	s.tasks[id] = rec
	return rec, nil
}

func (s *memoryStore) DeleteTask(id string, expectedVersion *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	if expectedVersion != nil && *expectedVersion != rec.Version {
		return ErrStaleVersion
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memoryStore) CreateUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *memoryStore) UserByUsername(username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *memoryStore) UserExists(email, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}
