package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital-portal/internal/infrastructure/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keyed is satisfied by pointers to entities that expose their key.
type Keyed[T any] interface {
	*T
	PrimaryKey() any
}

// ScanOptions narrows a collection scan.
type ScanOptions[T any] struct {
	// Where holds column equality conditions.
	Where map[string]any
	// Search is matched case-insensitively as a substring of SearchFields.
	Search       string
	SearchFields []string
	// Filter is applied in process after the query.
	Filter  func(*T) bool
	Reverse bool
	Limit   int
}

// Collection is the generic record repository over one named collection.
// Every method runs on the db it is given so the caller controls whether it
// joins a unit of work.
type Collection[T any, P Keyed[T]] struct {
	name string
	key  string
}

func NewCollection[T any, P Keyed[T]](name, keyColumn string) *Collection[T, P] {
	return &Collection[T, P]{name: name, key: keyColumn}
}

func (c *Collection[T, P]) Name() string {
	return c.name
}

// Add inserts rec and returns its key. Fails with store.ErrDuplicateKey when
// the key or a unique index value is taken.
func (c *Collection[T, P]) Add(db *gorm.DB, rec P) (any, error) {
	if err := db.Create(rec).Error; err != nil {
		return nil, c.wrap("add", err)
	}
	return rec.PrimaryKey(), nil
}

// InsertIfAbsent inserts rec unless its key or a unique index value already
// exists. Reports whether a row was written.
func (c *Collection[T, P]) InsertIfAbsent(db *gorm.DB, rec P) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
	if result.Error != nil {
		return false, c.wrap("insert", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Get returns the record stored under key, or nil when there is none.
func (c *Collection[T, P]) Get(db *gorm.DB, key any) (P, error) {
	var rec T
	err := db.Where(clause.Eq{Column: clause.Column{Name: c.key}, Value: key}).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, c.wrap("get", err)
	}
	return P(&rec), nil
}

// FindOne returns the first record whose field equals value, in key order.
func (c *Collection[T, P]) FindOne(db *gorm.DB, field string, value any) (P, error) {
	var rec T
	err := db.Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: c.key}}).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, c.wrap("find", err)
	}
	return P(&rec), nil
}

// FindOneFold is FindOne with a case-insensitive string comparison.
func (c *Collection[T, P]) FindOneFold(db *gorm.DB, field, value string) (P, error) {
	var rec T
	err := db.Where(fmt.Sprintf("LOWER(%s) = ?", field), strings.ToLower(strings.TrimSpace(value))).
		Order(clause.OrderByColumn{Column: clause.Column{Name: c.key}}).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, c.wrap("find", err)
	}
	return P(&rec), nil
}

// Put inserts or replaces the record under its key.
func (c *Collection[T, P]) Put(db *gorm.DB, rec P) error {
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error; err != nil {
		return c.wrap("put", err)
	}
	return nil
}

// Delete removes the record under key. Deleting a missing key is not an
// error; the returned count tells whether anything was removed.
func (c *Collection[T, P]) Delete(db *gorm.DB, key any) (int64, error) {
	result := db.Where(clause.Eq{Column: clause.Column{Name: c.key}, Value: key}).Delete(new(T))
	if result.Error != nil {
		return 0, c.wrap("delete", result.Error)
	}
	return result.RowsAffected, nil
}

// Scan returns the records matching opts in key order, or reverse key order
// when opts.Reverse is set.
func (c *Collection[T, P]) Scan(db *gorm.DB, opts ScanOptions[T]) ([]T, error) {
	query := db.Model(new(T))
	if len(opts.Where) > 0 {
		query = query.Where(opts.Where)
	}
	if search := strings.TrimSpace(opts.Search); search != "" && len(opts.SearchFields) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		conds := make([]string, len(opts.SearchFields))
		args := make([]any, len(opts.SearchFields))
		for i, field := range opts.SearchFields {
			conds[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", field)
			args[i] = pattern
		}
		query = query.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: c.key}, Desc: opts.Reverse})
	if opts.Limit > 0 && opts.Filter == nil {
		query = query.Limit(opts.Limit)
	}

	var records []T
	if err := query.Find(&records).Error; err != nil {
		return nil, c.wrap("scan", err)
	}

	if opts.Filter == nil {
		return records, nil
	}
	filtered := make([]T, 0, len(records))
	for i := range records {
		if opts.Filter(&records[i]) {
			filtered = append(filtered, records[i])
			if opts.Limit > 0 && len(filtered) == opts.Limit {
				break
			}
		}
	}
	return filtered, nil
}

// Count returns the number of records in the collection.
func (c *Collection[T, P]) Count(db *gorm.DB) (int64, error) {
	var n int64
	if err := db.Model(new(T)).Count(&n).Error; err != nil {
		return 0, c.wrap("count", err)
	}
	return n, nil
}

func (c *Collection[T, P]) wrap(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s %s: %w", op, c.name, store.Translate(err))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
