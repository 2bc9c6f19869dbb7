package main

import (
	"errors"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func newGormStore(db *gorm.DB) *gormStore { return &gormStore{db: db} }

func (s *gormStore) TasksByUser(userID string) ([]TaskRecord, error) {
	var recs []TaskRecord
	if err := s.db.Where("user_id = ?", userID).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *gormStore) CreateTask(rec *TaskRecord) error {
	return s.db.Create(rec).Error
}

func (s *gormStore) UpdateTask(id string, patch TaskPatch) (TaskRecord, error) {
	var rec TaskRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if patch.ExpectedVersion != nil && *patch.ExpectedVersion != rec.Version {
			return ErrStaleVersion
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
		return tx.Save(&rec).Error
	})
	if err != nil {
		return TaskRecord{}, err
	}
	return rec, nil
}

func (s *gormStore) DeleteTask(id string, expectedVersion *int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var rec TaskRecord
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if expectedVersion != nil && *expectedVersion != rec.Version {
			return ErrStaleVersion
		}
		return tx.Delete(&rec).Error
	})
}

func (s *gormStore) CreateUser(u *User) error {
	return s.db.Create(u).Error
}

func (s *gormStore) UserByUsername(username string) (User, error) {
	var u User
	if err := s.db.First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (s *gormStore) UserExists(email, username string) (bool, error) {
	var count int64
	if err := s.db.Model(&User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
