// Package repository holds the GORM-backed stores of the service.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Page bounds a list query
type Page struct {
	Skip  int
	Limit int
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

func (p Page) apply(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	skip := p.Skip
	if skip < 0 {
		skip = 0
	}
	return db.Offset(skip).Limit(limit)
}

// translate maps GORM's not-found error onto ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// deleteByID removes one row and reports ErrNotFound when nothing matched
func deleteByID[T any](db *gorm.DB, id uint) error {
	var model T
	result := db.Delete(&model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func findByID[T any](db *gorm.DB, id uint) (*T, error) {
	var model T
	if err := db.First(&model, id).Error; err != nil {
		return nil, translate(err)
	}
	return &model, nil
}
