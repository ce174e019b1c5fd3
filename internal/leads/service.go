package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m1kezera/ai-faq-widget/internal/db"
	"github.com/m1kezera/ai-faq-widget/internal/helper"
)

const defaultSource = "widget"

// CreateLead is the widget's lead payload. Everything is optional; the
// site key arrives separately as a header.
type CreateLead struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Message string         `json:"message"`
	Source  string         `json:"source"`
	Meta    map[string]any `json:"meta"`
}

// Page is one page of leads for the admin dashboard.
type Page struct {
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int       `json:"total"`
	Items []db.Lead `json:"items"`
}

// Store persists and lists leads.
type Store interface {
	Insert(ctx context.Context, lead *db.Lead) error
	List(ctx context.Context, siteKey string, offset, limit int) ([]db.Lead, int, error)
	ListAll(ctx context.Context, siteKey string) ([]db.Lead, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create stores a lead and returns its id.
func (s *Service) Create(ctx context.Context, siteKey string, body CreateLead) (string, error) {
	id, err := helper.GenerateUUID()
	if err != nil {
		return "", err
	}

	source := body.Source
	if source == "" {
		source = defaultSource
	}
	meta := body.Meta
	if meta == nil {
		meta = map[string]any{}
	}

	lead := &db.Lead{
		ID:        id,
		SiteKey:   siteKey,
		Name:      strings.TrimSpace(body.Name),
		Email:     strings.TrimSpace(body.Email),
		Message:   strings.TrimSpace(body.Message),
		Source:    source,
		Meta:      meta,
		CreatedAt: time.Now(),
	}
	if err := s.store.Insert(ctx, lead); err != nil {
		return "", fmt.Errorf("insert lead: %w", err)
	}
	return id, nil
}

// List returns one page of leads. Page starts at 1; limit is clamped to
// 1..100 with a default of 25.
func (s *Service) List(ctx context.Context, siteKey string, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}

	items, total, err := s.store.List(ctx, siteKey, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	if items == nil {
		items = []db.Lead{}
	}
	return &Page{Page: page, Limit: limit, Total: total, Items: items}, nil
}

// ExportCSV renders every lead for the site as CSV, newest first.
func (s *Service) ExportCSV(ctx context.Context, siteKey string) (string, error) {
	items, err := s.store.ListAll(ctx, siteKey)
	if err != nil {
		return "", fmt.Errorf("export leads: %w", err)
	}

	rows := []string{"id,name,email,message,source,created_at"}
	for _, l := range items {
		rows = append(rows, strings.Join([]string{
			csvEscape(l.ID),
			csvEscape(l.Name),
			csvEscape(l.Email),
			csvEscape(l.Message),
			csvEscape(l.Source),
			csvEscape(l.CreatedAt.Format(time.RFC3339)),
		}, ","))
	}
	return strings.Join(rows, "\n"), nil
}

// csvEscape quotes fields containing commas, quotes or newlines.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
