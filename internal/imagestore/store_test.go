package imagestore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/imagestore"
)

func newStore(t *testing.T) *imagestore.FS {
	t.Helper()
	s, err := imagestore.New(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)
	return s
}

func TestPut_AndServe(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	n, err := s.Put(ctx, "images/a.png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, "http://localhost:8080/media/images/a.png", s.PublicURL("images/a.png"))

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/media/images/a.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPut_NoOverwrite(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "images/a.png", strings.NewReader("one"))
	require.NoError(t, err)

	_, err = s.Put(ctx, "images/a.png", strings.NewReader("two"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPut_RejectsTraversal(t *testing.T) {
	s := newStore(t)

	for _, key := range []string{"../escape.png", "/abs.png", "images/../../x.png", ""} {
		_, err := s.Put(context.Background(), key, strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrValidation, "key %q", key)
	}
}

func TestDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "images/b.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "images/b.jpg"))
	assert.ErrorIs(t, s.Delete(ctx, "images/b.jpg"), domain.ErrNotFound)
}

func TestHandler_NoDirectoryListing(t *testing.T) {
	s := newStore(t)
	_, err := s.Put(context.Background(), "images/c.png", strings.NewReader("x"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/images/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
