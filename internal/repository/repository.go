// Package repository persists catalog entities in MySQL through sqlx.
//
// Writes receive fully shaped values from the payload package: a model for
// inserts, a payload.UpdateSet for partial updates. Failures come back as
// apperr errors so handlers can map them without inspecting driver types.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Store groups the per-table repositories over one pool.
type Store struct {
	DB         *sqlx.DB
	Categories *CategoryRepository
	Products   *ProductRepository
	Banners    *BannerRepository
	Settings   *SettingsRepository
	Admins     *AdminRepository
}

func New(db *sqlx.DB) *Store {
	return &Store{
		DB:         db,
		Categories: &CategoryRepository{db: db},
		Products:   &ProductRepository{db: db},
		Banners:    &BannerRepository{db: db},
		Settings:   &SettingsRepository{db: db},
		Admins:     &AdminRepository{db: db},
	}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// MySQL server error numbers.
const (
	errDuplicateEntry   = 1062
	errRowIsReferenced  = 1451
	errNoReferencedRow  = 1452
	errRowIsReferenced2 = 1217
	errNoReferencedRow2 = 1216
)

// classify turns driver errors into apperr kinds. entity names the table's
// subject in messages ("Product", "Category").
func classify(err error, entity, action string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity + " not found")
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDuplicateEntry:
			return apperr.Conflict(entity+" already exists", err)
		case errRowIsReferenced, errRowIsReferenced2:
			return apperr.Conflict(entity+" is still referenced", err)
		case errNoReferencedRow, errNoReferencedRow2:
			return apperr.NotFound("Category not found")
		}
	}
	return apperr.Upstream(fmt.Sprintf("%s %s", action, strings.ToLower(entity)), err)
}

// columnMap maps UpdateSet field names to the columns of one table.
type columnMap map[string]string

// buildUpdate renders "UPDATE <table> SET ... WHERE id = ?" for the fields of
// set. Fields without a column are rejected so no caller-controlled name ever
// reaches the SQL text. updated_at is always written.
func buildUpdate(table string, cols columnMap, set payload.UpdateSet, id int64, now time.Time) (string, []any, error) {
	if set.IsEmpty() {
		return "", nil, errors.New("repository: empty update")
	}

	var sb strings.Builder
	args := make([]any, 0, set.Len()+2)
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")
	for _, field := range set.Fields() {
		col, ok := cols[field]
		if !ok {
			return "", nil, fmt.Errorf("repository: %s has no column for field %q", table, field)
		}
		v, _ := set.Get(field)
		sb.WriteString(col)
		sb.WriteString(" = ?, ")
		args = append(args, v)
	}
	sb.WriteString("updated_at = ? WHERE id = ?")
	args = append(args, now, id)
	return sb.String(), args, nil
}

// execUpdate applies set to the row with id and reports NotFound when no row
// matched. An empty set only checks existence.
func execUpdate(ctx context.Context, db *sqlx.DB, table, entity string, cols columnMap, set payload.UpdateSet, id int64) error {
	if set.IsEmpty() {
		return exists(ctx, db, table, entity, id)
	}

	query, args, err := buildUpdate(table, cols, set, id, time.Now())
	if err != nil {
		return apperr.Upstream("update "+strings.ToLower(entity), err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err, entity, "update")
	}
	// Without clientFoundRows MySQL counts changed rows only, so a zero
	// count needs a second look before it means "missing".
	n, err := res.RowsAffected()
	if err != nil {
		return classify(err, entity, "update")
	}
	if n == 0 {
		return exists(ctx, db, table, entity, id)
	}
	return nil
}

func exists(ctx context.Context, db sqlx.QueryerContext, table, entity string, id int64) error {
	var one int
	err := sqlx.GetContext(ctx, db, &one, "SELECT 1 FROM "+table+" WHERE id = ?", id)
	return classify(err, entity, "load")
}

func deleteByID(ctx context.Context, db sqlx.ExecerContext, table, entity string, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return classify(err, entity, "delete")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(err, entity, "delete")
	}
	if n == 0 {
		return apperr.NotFound(entity + " not found")
	}
	return nil
}
