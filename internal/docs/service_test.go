package docs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1kezera/ai-faq-widget/internal/ask"
)

type fakeStore struct {
	siteKey string
	texts   []string
	calls   int
}

func (s *fakeStore) InsertChunks(_ context.Context, siteKey string, texts []string) (int, error) {
	s.calls++
	s.siteKey = siteKey
	s.texts = texts
	return len(texts), nil
}

func TestSaveTextChunksAndStores(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, 500, 0)

	long := strings.Repeat("All plans include email support. ", 60) // ~2k chars
	inserted, err := svc.SaveText(context.Background(), "t1", long)
	require.NoError(t, err)

	assert.Equal(t, "t1", store.siteKey)
	assert.Equal(t, len(store.texts), inserted)
	assert.Greater(t, inserted, 1)
	for _, text := range store.texts {
		assert.LessOrEqual(t, len(text), 500)
		assert.NotEmpty(t, strings.TrimSpace(text))
	}
}

func TestSaveTextShortTextSingleChunk(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, 500, 0)

	inserted, err := svc.SaveText(context.Background(), "t1", "The price is $10")
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, []string{"The price is $10"}, store.texts)
}

func TestSaveTextValidation(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, 500, 0)

	var validation *ask.ValidationError

	_, err := svc.SaveText(context.Background(), "", "some text")
	require.ErrorAs(t, err, &validation)

	_, err = svc.SaveText(context.Background(), "t1", "   \n")
	require.ErrorAs(t, err, &validation)

	assert.Zero(t, store.calls)
}

func TestSaveFileIngestsText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.txt")
	require.NoError(t, os.WriteFile(path, []byte("Shipping takes 3 days.\n\nReturns within 30 days."), 0o600))

	store := &fakeStore{}
	svc := NewService(store, 500, 0)

	inserted, err := svc.SaveFile(context.Background(), "t1", path)
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, len(store.texts), inserted)
	assert.Contains(t, strings.Join(store.texts, " "), "Shipping takes 3 days.")
}

func TestSaveFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.exe")
	require.NoError(t, os.WriteFile(path, []byte("binary"), 0o600))

	svc := NewService(&fakeStore{}, 500, 0)
	_, err := svc.SaveFile(context.Background(), "t1", path)
	assert.Error(t, err)
}
