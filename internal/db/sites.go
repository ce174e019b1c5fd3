package db

import (
	"context"

	"github.com/uptrace/bun"
)

// SiteStore persists registered sites and their usage counters.
type SiteStore struct {
	db *bun.DB
}

func NewSiteStore(db *bun.DB) *SiteStore {
	return &SiteStore{db: db}
}

func (s *SiteStore) Insert(ctx context.Context, site *Site) error {
	_, err := s.db.NewInsert().Model(site).Exec(ctx)
	return err
}

// GetByKey returns the site for the key, or sql.ErrNoRows.
func (s *SiteStore) GetByKey(ctx context.Context, siteKey string) (*Site, error) {
	site := new(Site)
	err := s.db.NewSelect().
		Model(site).
		Where("site_key = ?", siteKey).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return site, nil
}

// IncrementUsage bumps the usage counter by one question.
func (s *SiteStore) IncrementUsage(ctx context.Context, siteKey string) error {
	_, err := s.db.NewUpdate().
		Model((*Site)(nil)).
		Set("usage = usage + 1").
		Where("site_key = ?", siteKey).
		Exec(ctx)
	return err
}
