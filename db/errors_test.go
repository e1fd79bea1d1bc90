package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"github.com/padraicbc/concursos/store"
)

func TestTranslate(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), store.ErrNotFound},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, store.ErrConflict},
		{"mysql parent row", &mysql.MySQLError{Number: 1451, Message: "Cannot delete"}, store.ErrReferenced},
		{"mysql child row", &mysql.MySQLError{Number: 1452, Message: "Cannot add"}, store.ErrReferenced},
		{"mysql other", &mysql.MySQLError{Number: 1146, Message: "no table"}, nil},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			switch {
			case tt.in == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Equal(t, tt.in, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}
