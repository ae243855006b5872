package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres"))
	assert.Equal(t, DialectPostgres, DialectFor("PGX"))
	assert.Equal(t, DialectSQLite, DialectFor("sqlite"))
	assert.Equal(t, DialectSQLite, DialectFor(""))
}

func TestRebind(t *testing.T) {
	q := `UPDATE timed_jobs SET live = ?, updated_at = ? WHERE id = ? AND name <> '?'`

	assert.Equal(t, q, DialectSQLite.Rebind(q))
	assert.Equal(t,
		`UPDATE timed_jobs SET live = $1, updated_at = $2 WHERE id = $3 AND name <> '?'`,
		DialectPostgres.Rebind(q))
	assert.Equal(t, `SELECT 1`, DialectPostgres.Rebind(`SELECT 1`))
}
