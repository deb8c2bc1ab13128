package tasks

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/schmilblick-org/violetear-coordinator/database/auditlog"
	"github.com/schmilblick-org/violetear-coordinator/database/dbcore"
	"github.com/schmilblick-org/violetear-coordinator/database/models"
	"github.com/schmilblick-org/violetear-coordinator/database/profiles"
	"github.com/schmilblick-org/violetear-coordinator/utils/digest"
)

// Store creates and looks up Tasks. A task binds to exactly one existing
// Profile and is immutable once created.
type Store struct {
	db *dbcore.DB
	// VerifyOnFetch re-checks the stored digest against the stored bytes on
	// every Get. A mismatch is an out-of-contract condition: the row was
	// written with a digest the server computed itself.
	VerifyOnFetch bool
}

func New(db *dbcore.DB) *Store {
	return &Store{db: db}
}

// Create resolves the profile, computes the digest over data and inserts the
// task, all inside one transaction so the whole call holds a single pooled
// connection and no row is left behind on failure. A missing profile fails
// with dbcore.ErrNotFound before anything is written.
func (s *Store) Create(profile models.ProfileID, fileName string, data []byte) (models.TaskID, error) {
	task := models.Task{
		ProfileID: profile,
		FileName:  fileName,
		Data:      data,
		Digest:    string(digest.Sum(data)),
	}
	err := s.db.Gorm().Transaction(func(tx *gorm.DB) error {
		if _, err := profiles.ResolveTx(tx, profile); err != nil {
			return err
		}
		if err := tx.Create(&task).Error; err != nil {
			return fmt.Errorf("insert task: %w", dbcore.Translate(err))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("create task for profile %d: %w", profile, err)
	}
	return task.ID, nil
}

// List returns all task ids, or only those bound to byProfile when it is
// non-nil. Ordered by id; no match is an empty slice.
func (s *Store) List(byProfile *models.ProfileID) ([]models.TaskID, error) {
	ids := []models.TaskID{}
	q := s.db.Gorm().Model(&models.Task{}).Order("id")
	if byProfile != nil {
		q = q.Where("profile_id = ?", *byProfile)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", dbcore.Translate(err))
	}
	return ids, nil
}

// Get returns the full record including data and digest, dbcore.ErrNotFound
// when id does not exist. With VerifyOnFetch set, a digest that no longer
// matches the stored bytes is logged with full context and surfaced as an
// error rather than returned as intact data.
func (s *Store) Get(id models.TaskID) (*models.Task, error) {
	var task models.Task
	if err := s.db.Gorm().First(&task, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("fetch task %d: %w", id, dbcore.Translate(err))
	}
	if s.VerifyOnFetch {
		if err := digest.Verify(task.Data, digest.Digest(task.Digest)); err != nil {
			auditlog.Event(s.db, auditlog.LevelError, "fetch_task",
				fmt.Sprintf("task %d failed integrity check: %v", id, err))
			return nil, fmt.Errorf("task %d: %w", id, err)
		}
	}
	return &task, nil
}

// IsNotFound reports whether err means the task or its profile was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, dbcore.ErrNotFound)
}
