package tasks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmilblick-org/violetear-coordinator/database/dbcore"
	"github.com/schmilblick-org/violetear-coordinator/database/models"
	"github.com/schmilblick-org/violetear-coordinator/database/profiles"
	"github.com/schmilblick-org/violetear-coordinator/utils/digest"
)

func newTestStore(t *testing.T) (*Store, *profiles.Registry) {
	db, err := dbcore.Open(dbcore.Options{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), profiles.New(db)
}

func TestCreateRoundTrip(t *testing.T) {
	store, reg := newTestStore(t)

	pid, err := reg.Create("ci", "nightly", "{}")
	require.NoError(t, err)

	data := []byte("hello")
	tid, err := store.Create(pid, "out.log", data)
	assert.NoError(t, err)
	assert.Equal(t, models.TaskID(1), tid)

	task, err := store.Get(tid)
	assert.NoError(t, err)
	assert.Equal(t, "out.log", task.FileName)
	assert.Equal(t, data, task.Data)
	assert.Equal(t, pid, task.ProfileID)
	// stored digest reproduces over the fetched bytes
	assert.Equal(t, string(digest.Sum(task.Data)), task.Digest)
	assert.Equal(t, "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", task.Digest)
}

func TestCreateMissingProfile(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Create(999999, "out.log", []byte("x"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dbcore.ErrNotFound), "expected ErrNotFound, got %v", err)
	assert.True(t, IsNotFound(err))

	// no row was created
	ids, err := store.List(nil)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(42)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dbcore.ErrNotFound))
}

func TestListFiltering(t *testing.T) {
	store, reg := newTestStore(t)

	p1, err := reg.Create("ci", "one", "{}")
	require.NoError(t, err)
	p2, err := reg.Create("ci", "two", "{}")
	require.NoError(t, err)

	t1, err := store.Create(p1, "a.log", []byte("a"))
	require.NoError(t, err)
	t2, err := store.Create(p2, "b.log", []byte("b"))
	require.NoError(t, err)
	t3, err := store.Create(p1, "c.log", []byte("c"))
	require.NoError(t, err)

	ids, err := store.List(&p1)
	assert.NoError(t, err)
	assert.Equal(t, []models.TaskID{t1, t3}, ids)

	all, err := store.List(nil)
	assert.NoError(t, err)
	assert.Equal(t, []models.TaskID{t1, t2, t3}, all)

	missing := models.ProfileID(12345)
	empty, err := store.List(&missing)
	assert.NoError(t, err)
	assert.Equal(t, []models.TaskID{}, empty)
}

func TestEmptyPayload(t *testing.T) {
	store, reg := newTestStore(t)

	pid, err := reg.Create("ci", "empty", "{}")
	require.NoError(t, err)

	tid, err := store.Create(pid, "empty.bin", []byte{})
	assert.NoError(t, err)

	task, err := store.Get(tid)
	assert.NoError(t, err)
	assert.Empty(t, task.Data)
	assert.Equal(t, string(digest.Sum(nil)), task.Digest)
}

func TestVerifyOnFetch(t *testing.T) {
	store, reg := newTestStore(t)
	store.VerifyOnFetch = true

	pid, err := reg.Create("ci", "verify", "{}")
	require.NoError(t, err)
	tid, err := store.Create(pid, "ok.bin", []byte("payload"))
	require.NoError(t, err)

	// intact row passes
	_, err = store.Get(tid)
	assert.NoError(t, err)

	// corrupt the stored bytes behind the store's back
	err = store.db.Gorm().Model(&models.Task{}).Where("id = ?", tid).
		Update("data", []byte("tampered")).Error
	require.NoError(t, err)

	_, err = store.Get(tid)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")

	// the failure was recorded in the operation log
	var count int64
	err = store.db.Gorm().Model(&models.OperationLog{}).Where("level = ?", "error").Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
