package sites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/m1kezera/ai-faq-widget/internal/db"
	"github.com/m1kezera/ai-faq-widget/internal/helper"
)

const (
	defaultPlan  = "free"
	defaultQuota = 500
)

// ErrQuotaExceeded means the site used up its monthly question quota.
var ErrQuotaExceeded = errors.New("monthly quota exceeded")

// Store persists sites and their usage counters.
type Store interface {
	Insert(ctx context.Context, site *db.Site) error
	GetByKey(ctx context.Context, siteKey string) (*db.Site, error)
	IncrementUsage(ctx context.Context, siteKey string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a site and mints its widget key.
func (s *Service) Register(ctx context.Context, name, plan string) (*db.Site, error) {
	if plan == "" {
		plan = defaultPlan
	}

	id, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}
	siteKey, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}

	site := &db.Site{
		ID:           id,
		SiteKey:      siteKey,
		Name:         name,
		Plan:         plan,
		MonthlyQuota: defaultQuota,
		Usage:        0,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Insert(ctx, site); err != nil {
		return nil, fmt.Errorf("insert site: %w", err)
	}
	return site, nil
}

// ConsumeQuota accounts one question against the site. Keys that were
// never registered pass through: chunk lookup decides their fate.
func (s *Service) ConsumeQuota(ctx context.Context, siteKey string) error {
	site, err := s.store.GetByKey(ctx, siteKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load site: %w", err)
	}

	if site.Usage >= site.MonthlyQuota {
		return ErrQuotaExceeded
	}
	return s.store.IncrementUsage(ctx, siteKey)
}
