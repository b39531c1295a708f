// Package counterrepo provides atomic yearly document sequence allocation
// backed by a single-row-per-counter table. The upsert increments and returns
// the counter in one statement, so concurrent allocations can never yield
// duplicate numbers.
package counterrepo

import (
	"context"

	"gorm.io/gorm"
)

// CounterDTO represents one (kind, year) counter row.
type CounterDTO struct {
	Kind  string `gorm:"size:32;primaryKey"`
	Year  int    `gorm:"primaryKey"`
	Value int64
}

// TableName specifies the database table name for document counters.
func (CounterDTO) TableName() string {
	return "document_counters"
}

// GormDocumentCounters implements DocumentCounters using GORM.
type GormDocumentCounters struct {
	db *gorm.DB
}

// NewGormDocumentCounters creates a new GORM document counter repository.
func NewGormDocumentCounters(db *gorm.DB) *GormDocumentCounters {
	return &GormDocumentCounters{db: db}
}

// Next atomically increments and returns the counter for the given kind and
// year, creating the row at 1 on first use.
func (r *GormDocumentCounters) Next(ctx context.Context, kind string, year int) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO document_counters (kind, year, value)
		VALUES (?, ?, 1)
		ON CONFLICT (kind, year)
		DO UPDATE SET value = document_counters.value + 1
		RETURNING value`,
		kind, year,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}
