package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/core/domain"
)

func newTestImporter(t *testing.T) (*Importer, string) {
	t.Helper()
	dir := t.TempDir()
	imp, err := NewImporter(dir)
	require.NoError(t, err)
	return imp, filepath.Join(dir, "images")
}

func TestImportStoresFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png bytes"))
	}))
	t.Cleanup(server.Close)

	imp, dir := newTestImporter(t)
	name, err := imp.Import(context.Background(), server.URL+"/pic")
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(name), "extension falls back to the content type")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestImportKeepsURLExtension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("jpg bytes"))
	}))
	t.Cleanup(server.Close)

	imp, _ := newTestImporter(t)
	name, err := imp.Import(context.Background(), server.URL+"/photos/cat.JPG")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(name))
}

func TestImportRejectsInvalidURL(t *testing.T) {
	imp, _ := newTestImporter(t)

	for _, raw := range []string{"", "notaurl", "ftp://host/pic.png", "https://"} {
		_, err := imp.Import(context.Background(), raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "url %q", raw)
	}
}

func TestImportRejectsOversizeBeforeDownload(t *testing.T) {
	served := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		served = true
		w.Header().Set("Content-Length", strconv.Itoa(maxImageBytes+1))
	}))
	t.Cleanup(server.Close)

	imp, dir := newTestImporter(t)
	_, err := imp.Import(context.Background(), server.URL+"/huge.png")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, served)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may be written for a rejected image")
}

func TestImportStopsReadingOversizeStream(t *testing.T) {
	// No Content-Length; the body is chunked and exceeds the cap.
	chunk := make([]byte, 1<<20)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		for written := 0; written <= maxImageBytes; written += len(chunk) {
			if _, err := w.Write(chunk); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	imp, _ := newTestImporter(t)
	_, err := imp.Import(context.Background(), server.URL+"/huge.png")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	imp, _ := newTestImporter(t)
	_, err := imp.Import(context.Background(), server.URL+"/gone.png")
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestImportEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	t.Cleanup(server.Close)

	imp, _ := newTestImporter(t)
	_, err := imp.Import(context.Background(), server.URL+"/empty.png")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
