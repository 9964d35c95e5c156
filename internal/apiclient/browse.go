package apiclient

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/prefs"
	"github.com/pkordes/travel-planner/internal/service"
)

// Collections lists the browsable collections and whether browsing is on.
type Collections struct {
	Enabled     bool     `json:"enabled"`
	Collections []string `json:"collections"`
}

// Preferences returns the server's process-wide preferences.
func (c *Client) Preferences(ctx context.Context) (prefs.Preferences, error) {
	var p prefs.Preferences
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/preferences"}, &p)
	return p, wrap("Preferences", err)
}

// Collections returns the explorer's collection names.
func (c *Client) Collections(ctx context.Context) (Collections, error) {
	var out Collections
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/explorer"}, &out)
	return out, wrap("Collections", err)
}

// Browse returns one page of raw rows of collection. Zero page or limit
// leaves the server default in place.
func (c *Client) Browse(ctx context.Context, collection string, page, limit int) (service.ExplorerPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out service.ExplorerPage
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/explorer/" + url.PathEscape(collection), query: q}, &out)
	return out, wrap("Browse", err)
}

// UploadImage stores an image read from r under filename's extension.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (domain.Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.Image{}, wrap("UploadImage", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return domain.Image{}, wrap("UploadImage", err)
	}
	if err := mw.Close(); err != nil {
		return domain.Image{}, wrap("UploadImage", err)
	}

	var img domain.Image
	_, err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/images",
		raw:         &buf,
		contentType: mw.FormDataContentType(),
	}, &img)
	return img, wrap("UploadImage", err)
}

// ListImages returns up to 100 stored images, oldest first.
func (c *Client) ListImages(ctx context.Context) ([]domain.Image, error) {
	var env listEnvelope[domain.Image]
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/images"}, &env); err != nil {
		return nil, wrap("ListImages", err)
	}
	return nonNil(env.Data), nil
}

// Export returns every item of a trip, flattened.
func (c *Client) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	var env listEnvelope[domain.ExportRow]
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/trips/" + tripID.String() + "/export"}, &env); err != nil {
		return nil, wrap("Export", err)
	}
	return nonNil(env.Data), nil
}

// ExportCSV streams the CSV export of a trip into w.
func (c *Client) ExportCSV(ctx context.Context, tripID uuid.UUID, w io.Writer) error {
	q := url.Values{"format": {"csv"}}
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/trips/" + tripID.String() + "/export", query: q}, w)
	return wrap("ExportCSV", err)
}
