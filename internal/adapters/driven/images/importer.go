// Package images downloads remote images into the local data
// directory so synced documents survive remote URL expiry.
package images

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
	"github.com/inkpress/inkpress/internal/logger"
)

// Ensure Importer implements the interface.
var _ driven.ImageImporter = (*Importer)(nil)

// maxImageBytes bounds one download.
const maxImageBytes = 20 << 20

// Importer fetches images over HTTP and stores them under
// dataDir/images with generated names.
type Importer struct {
	http *resty.Client
	dir  string
	log  zerolog.Logger
}

// NewImporter creates an importer storing files under dataDir/images.
func NewImporter(dataDir string) (*Importer, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inkpress", "data")
	}
	dir := filepath.Join(dataDir, "images")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}

	return &Importer{
		http: resty.New().SetTimeout(60 * time.Second),
		dir:  dir,
		log:  logger.New("images"),
	}, nil
}

// Import downloads rawURL and returns the stored file name.
func (i *Importer) Import(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: not a fetchable image URL: %q", domain.ErrInvalidInput, rawURL)
	}

	// The response is streamed so the size cap applies during the
	// transfer, not after buffering the whole body.
	resp, err := i.http.R().SetContext(ctx).SetDoNotParseResponse(true).Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	raw := resp.RawBody()
	defer raw.Close()

	if resp.IsError() {
		return "", &domain.APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	}
	if cl := resp.RawResponse.ContentLength; cl > maxImageBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidInput, maxImageBytes)
	}

	body, err := io.ReadAll(io.LimitReader(raw, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("%w: empty image body", domain.ErrMalformedResponse)
	}
	if len(body) > maxImageBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidInput, maxImageBytes)
	}

	name := uuid.NewString() + extension(rawURL, resp.Header().Get("Content-Type"))
	dest := filepath.Join(i.dir, name)
	if err := os.WriteFile(dest, body, 0600); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}

	i.log.Debug().Str("url", rawURL).Str("file", name).Msg("image imported")
	return name, nil
}

// extension picks a file extension from the URL path, falling back to
// the response content type, then to .img.
func extension(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".img"
}
