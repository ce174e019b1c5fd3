package db

import (
	"context"

	"github.com/uptrace/bun"
)

// LeadStore persists widget-collected leads.
type LeadStore struct {
	db *bun.DB
}

func NewLeadStore(db *bun.DB) *LeadStore {
	return &LeadStore{db: db}
}

func (s *LeadStore) Insert(ctx context.Context, lead *Lead) error {
	_, err := s.db.NewInsert().Model(lead).Exec(ctx)
	return err
}

// List returns one page of leads for the site, newest first, with the
// total count for that site.
func (s *LeadStore) List(ctx context.Context, siteKey string, offset, limit int) ([]Lead, int, error) {
	var rows []Lead
	total, err := s.db.NewSelect().
		Model(&rows).
		Where("site_key = ?", siteKey).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListAll returns every lead for the site, newest first. Used by the
// CSV export.
func (s *LeadStore) ListAll(ctx context.Context, siteKey string) ([]Lead, error) {
	var rows []Lead
	err := s.db.NewSelect().
		Model(&rows).
		Where("site_key = ?", siteKey).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
