package dbcore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/schmilblick-org/violetear-coordinator/database/models"
)

func TestOpenEnsuresSchema(t *testing.T) {
	db, err := Open(Options{DSN: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"profiles", "tasks", "operation_logs"} {
		assert.True(t, db.Gorm().Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestOpenIdempotentOnExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinator.db")

	db, err := Open(Options{DSN: path})
	require.NoError(t, err)
	require.NoError(t, db.Gorm().Create(&models.Profile{Base: "ci", Name: "kept"}).Error)
	require.NoError(t, db.Close())

	// second open must not disturb existing rows
	db, err = Open(Options{DSN: path})
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.Gorm().Model(&models.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDriverSelection(t *testing.T) {
	assert.True(t, isPostgresDSN("postgres://u:p@h/db"))
	assert.True(t, isPostgresDSN("postgresql://u@h/db"))
	assert.True(t, isPostgresDSN("host=localhost user=c dbname=coordinator"))
	assert.False(t, isPostgresDSN(":memory:"))
	assert.False(t, isPostgresDSN("coordinator.db"))
	assert.False(t, isPostgresDSN(""))
}

func TestMaskDSN(t *testing.T) {
	masked := maskDSN("postgres://user:hunter2@db:5432/coordinator")
	assert.NotContains(t, masked, "hunter2")

	masked = maskDSN("host=db user=c password=hunter2 dbname=coordinator")
	assert.NotContains(t, masked, "hunter2")
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, Translate(nil))

	cases := []struct {
		in   error
		want error
	}{
		{gorm.ErrRecordNotFound, ErrNotFound},
		{gorm.ErrDuplicatedKey, ErrConflict},
		{gorm.ErrForeignKeyViolated, ErrConflict},
		{context.DeadlineExceeded, ErrBusy},
		{errors.New("dial tcp: connection refused"), ErrUnavailable},
	}
	for _, c := range cases {
		got := Translate(c.in)
		assert.True(t, errors.Is(got, c.want), "Translate(%v) = %v, want kind %v", c.in, got, c.want)
	}

	// wrapped errors keep their kind
	wrapped := fmt.Errorf("create profile: %w", Translate(gorm.ErrDuplicatedKey))
	assert.True(t, errors.Is(wrapped, ErrConflict))

	// already-translated errors pass through unchanged
	already := Translate(gorm.ErrRecordNotFound)
	assert.Equal(t, already, Translate(already))
}
