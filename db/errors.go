package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun/driver/pgdriver"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/padraicbc/concursos/store"
)

// translate maps driver errors onto the store sentinels so callers never
// have to know which database is behind the store.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case "23505":
			return fmt.Errorf("%w: %s", store.ErrConflict, pgErr.Field('n'))
		case "23503":
			return fmt.Errorf("%w: %s", store.ErrReferenced, pgErr.Field('n'))
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return fmt.Errorf("%w: %s", store.ErrConflict, myErr.Message)
		case 1451, 1452:
			return fmt.Errorf("%w: %s", store.ErrReferenced, myErr.Message)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", store.ErrConflict, liteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %s", store.ErrReferenced, liteErr.Error())
		}
	}
	return err
}

// affected returns ErrNotFound when an update or delete touched no row.
func affected(res sql.Result, err error) error {
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
