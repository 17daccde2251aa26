package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository is a thin generic store over a gorm model type.
type Repository[T any] interface {
	Insert(ctx context.Context, db *gorm.DB, record *T) error
	Save(ctx context.Context, db *gorm.DB, record *T) error
	Delete(ctx context.Context, db *gorm.DB, conds ...any) error
	Find(ctx context.Context, db *gorm.DB, dest *[]T, conds ...any) error
	First(ctx context.Context, db *gorm.DB, dest *T, conds ...any) error
	Count(ctx context.Context, db *gorm.DB, conds ...any) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to a default connection. Every call may
// still pass an override connection (e.g. a transaction handle).
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) conn(db *gorm.DB) *gorm.DB {
	if db != nil {
		return db
	}
	return s.db
}

func (s *store[T]) Insert(ctx context.Context, db *gorm.DB, record *T) error {
	return s.conn(db).WithContext(ctx).Create(record).Error
}

func (s *store[T]) Save(ctx context.Context, db *gorm.DB, record *T) error {
	return s.conn(db).WithContext(ctx).Save(record).Error
}

func (s *store[T]) Delete(ctx context.Context, db *gorm.DB, conds ...any) error {
	var zero T
	return s.conn(db).WithContext(ctx).Delete(&zero, conds...).Error
}

func (s *store[T]) Find(ctx context.Context, db *gorm.DB, dest *[]T, conds ...any) error {
	return s.conn(db).WithContext(ctx).Find(dest, conds...).Error
}

func (s *store[T]) First(ctx context.Context, db *gorm.DB, dest *T, conds ...any) error {
	return s.conn(db).WithContext(ctx).First(dest, conds...).Error
}

func (s *store[T]) Count(ctx context.Context, db *gorm.DB, conds ...any) (int64, error) {
	var zero T
	var total int64
	query := s.conn(db).WithContext(ctx).Model(&zero)
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}
	err := query.Count(&total).Error
	return total, err
}
