package leads

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1kezera/ai-faq-widget/internal/db"
)

type fakeStore struct {
	inserted []*db.Lead
	leads    []db.Lead

	listOffset int
	listLimit  int
}

func (s *fakeStore) Insert(_ context.Context, lead *db.Lead) error {
	s.inserted = append(s.inserted, lead)
	return nil
}

func (s *fakeStore) List(_ context.Context, _ string, offset, limit int) ([]db.Lead, int, error) {
	s.listOffset = offset
	s.listLimit = limit
	return s.leads, len(s.leads), nil
}

func (s *fakeStore) ListAll(_ context.Context, _ string) ([]db.Lead, error) {
	return s.leads, nil
}

func TestCreateTrimsAndDefaults(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	id, err := svc.Create(context.Background(), "t1", CreateLead{
		Name:    "  Ada Lovelace  ",
		Email:   " ada@example.com ",
		Message: "call me\n",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, store.inserted, 1)
	lead := store.inserted[0]
	assert.Equal(t, "t1", lead.SiteKey)
	assert.Equal(t, "Ada Lovelace", lead.Name)
	assert.Equal(t, "ada@example.com", lead.Email)
	assert.Equal(t, "call me", lead.Message)
	assert.Equal(t, "widget", lead.Source)
	assert.NotNil(t, lead.Meta)
}

func TestCreateKeepsExplicitSource(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	_, err := svc.Create(context.Background(), "t1", CreateLead{Source: "low-confidence"})
	require.NoError(t, err)
	assert.Equal(t, "low-confidence", store.inserted[0].Source)
}

func TestListClampsPaging(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	page, err := svc.List(context.Background(), "t1", 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 0, store.listOffset)
	assert.Equal(t, 100, store.listLimit)

	_, err = svc.List(context.Background(), "t1", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, store.listOffset) // (3-1) * default 25
	assert.Equal(t, 25, store.listLimit)
}

func TestExportCSV(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{leads: []db.Lead{
		{ID: "l1", Name: "Plain Name", Email: "a@b.c", Message: "hi", Source: "widget", CreatedAt: created},
		{ID: "l2", Name: `Quote "Q" Person`, Email: "q@b.c", Message: "line1\nline2, more", Source: "cta", CreatedAt: created},
	}}
	svc := NewService(store)

	csv, err := svc.ExportCSV(context.Background(), "t1")
	require.NoError(t, err)

	lines := strings.Split(csv, "\n")
	assert.Equal(t, "id,name,email,message,source,created_at", lines[0])
	assert.Equal(t, "l1,Plain Name,a@b.c,hi,widget,2024-05-01T12:00:00Z", lines[1])
	// quotes doubled, field wrapped because of the quote/comma/newline
	assert.Contains(t, csv, `"Quote ""Q"" Person"`)
	assert.Contains(t, csv, "\"line1\nline2, more\"")
}

func TestExportCSVEmpty(t *testing.T) {
	svc := NewService(&fakeStore{})

	csv, err := svc.ExportCSV(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "id,name,email,message,source,created_at", csv)
}
