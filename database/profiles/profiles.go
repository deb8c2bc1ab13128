package profiles

import (
	"fmt"

	"github.com/schmilblick-org/violetear-coordinator/database/dbcore"
	"github.com/schmilblick-org/violetear-coordinator/database/models"
	"gorm.io/gorm"
)

// Registry creates and looks up Profiles. Profiles are immutable once
// created; no update or delete exists.
type Registry struct {
	db *dbcore.DB
}

func New(db *dbcore.DB) *Registry {
	return &Registry{db: db}
}

// Create inserts a new profile and returns its server-assigned id. A
// duplicate name fails with dbcore.ErrConflict; nothing is overwritten.
func (r *Registry) Create(base, name, json string) (models.ProfileID, error) {
	profile := models.Profile{
		Base: base,
		Name: name,
		JSON: json,
	}
	if err := r.db.Gorm().Create(&profile).Error; err != nil {
		return 0, fmt.Errorf("create profile %q: %w", name, dbcore.Translate(err))
	}
	return profile.ID, nil
}

// List returns all profile ids, or only those whose base matches byBase when
// it is non-nil. Ordered by id so a snapshot is stable. No match is an empty
// slice, not an error.
func (r *Registry) List(byBase *string) ([]models.ProfileID, error) {
	ids := []models.ProfileID{}
	q := r.db.Gorm().Model(&models.Profile{}).Order("id")
	if byBase != nil {
		q = q.Where("base = ?", *byBase)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", dbcore.Translate(err))
	}
	return ids, nil
}

// Get returns the full record, dbcore.ErrNotFound when id does not exist.
func (r *Registry) Get(id models.ProfileID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Gorm().First(&profile, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("fetch profile %d: %w", id, dbcore.Translate(err))
	}
	return &profile, nil
}

// ResolveTx is Get running on an already-held connection, for callers that
// must resolve and insert without taking a second one from the pool.
func ResolveTx(tx *gorm.DB, id models.ProfileID) (*models.Profile, error) {
	var profile models.Profile
	if err := tx.First(&profile, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("fetch profile %d: %w", id, dbcore.Translate(err))
	}
	return &profile, nil
}
