package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/auth"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/internal/prefs"
	"github.com/pkordes/travel-planner/internal/service"
)

// Each mock is a test double for one handler interface.
// Set only the method fields your test needs.

type mockTrips struct {
	create  func(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error)
	getByID func(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	rename  func(ctx context.Context, ownerID, id uuid.UUID, name string) (domain.Trip, error)
	delete  func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockTrips) Create(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error) {
	return m.create(ctx, ownerID, name)
}
func (m *mockTrips) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockTrips) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	return m.list(ctx, ownerID)
}
func (m *mockTrips) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (domain.Trip, error) {
	return m.rename(ctx, ownerID, id, name)
}
func (m *mockTrips) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

type mockItems struct {
	create      func(ctx context.Context, item domain.Item) (domain.Item, error)
	createBatch func(ctx context.Context, ownerID, tripID uuid.UUID, kind domain.ListKind, items []domain.Item) ([]domain.Item, error)
	listByTrip  func(ctx context.Context, ownerID, tripID uuid.UUID, kind domain.ListKind) ([]domain.Item, error)
	update      func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error)
	delete      func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error
}

func (m *mockItems) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.create(ctx, item)
}
func (m *mockItems) CreateBatch(ctx context.Context, ownerID, tripID uuid.UUID, kind domain.ListKind, items []domain.Item) ([]domain.Item, error) {
	return m.createBatch(ctx, ownerID, tripID, kind, items)
}
func (m *mockItems) ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID, kind domain.ListKind) ([]domain.Item, error) {
	return m.listByTrip(ctx, ownerID, tripID, kind)
}
func (m *mockItems) Update(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error) {
	return m.update(ctx, ownerID, kind, id, patch)
}
func (m *mockItems) Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error {
	return m.delete(ctx, ownerID, kind, id)
}

type mockTemplates struct {
	list   func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error)
	create func(ctx context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error)
	delete func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error
}

func (m *mockTemplates) List(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error) {
	return m.list(ctx, ownerID, kind)
}
func (m *mockTemplates) Create(ctx context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error) {
	return m.create(ctx, tpl)
}
func (m *mockTemplates) Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error {
	return m.delete(ctx, ownerID, kind, id)
}

type mockExplorer struct {
	collections func() []string
	browse      func(ctx context.Context, ownerID uuid.UUID, collection string, p domain.PaginationParams) (service.ExplorerPage, error)
}

func (m *mockExplorer) Collections() []string { return m.collections() }
func (m *mockExplorer) Browse(ctx context.Context, ownerID uuid.UUID, collection string, p domain.PaginationParams) (service.ExplorerPage, error) {
	return m.browse(ctx, ownerID, collection, p)
}

type mockImages struct {
	upload func(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (domain.Image, error)
	list   func(ctx context.Context) ([]domain.Image, error)
}

func (m *mockImages) Upload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (domain.Image, error) {
	return m.upload(ctx, ownerID, filename, data)
}
func (m *mockImages) List(ctx context.Context) ([]domain.Image, error) { return m.list(ctx) }

type mockExport struct {
	export func(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExport) Export(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, ownerID, tripID)
}

type mockAuth struct {
	signUp         func(ctx context.Context, email, password string) (domain.User, error)
	signIn         func(ctx context.Context, email, password string) (domain.User, error)
	user           func(ctx context.Context, id uuid.UUID) (domain.User, error)
	requestReset   func(ctx context.Context, email string) error
	confirmReset   func(ctx context.Context, token, password string) error
	oauthURL       func() (string, string, error)
	oauthCallback  func(ctx context.Context, code string) (domain.User, error)
	oauthIsEnabled bool
}

func (m *mockAuth) SignUp(ctx context.Context, email, password string) (domain.User, error) {
	return m.signUp(ctx, email, password)
}
func (m *mockAuth) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	return m.signIn(ctx, email, password)
}
func (m *mockAuth) User(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.user(ctx, id)
}
func (m *mockAuth) RequestPasswordReset(ctx context.Context, email string) error {
	return m.requestReset(ctx, email)
}
func (m *mockAuth) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	return m.confirmReset(ctx, token, password)
}
func (m *mockAuth) OAuthEnabled() bool { return m.oauthIsEnabled }
func (m *mockAuth) OAuthURL() (string, string, error) {
	return m.oauthURL()
}
func (m *mockAuth) OAuthCallback(ctx context.Context, code string) (domain.User, error) {
	return m.oauthCallback(ctx, code)
}

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.TripServicer     = (*mockTrips)(nil)
	_ handler.ItemServicer     = (*mockItems)(nil)
	_ handler.TemplateServicer = (*mockTemplates)(nil)
	_ handler.ExplorerServicer = (*mockExplorer)(nil)
	_ handler.ImageServicer    = (*mockImages)(nil)
	_ handler.ExportServicer   = (*mockExport)(nil)
	_ handler.Authenticator    = (*mockAuth)(nil)
	_ handler.Pinger           = mockPinger{}
)

// ---- helpers ---------------------------------------------------------------

const testSecret = "0123456789abcdef0123456789abcdef"

// testUser is the user every authenticated test request runs as.
var testUser = domain.User{
	ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
	Email:     "alex@example.com",
	CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
}

// newTestServer fills in the session manager, an Auth mock that resolves
// testUser, and static preferences unless the test supplied its own.
func newTestServer(d handler.Deps) (http.Handler, *auth.SessionManager) {
	if d.Sessions == nil {
		d.Sessions = auth.NewSessionManager(testSecret, "http://localhost:8080")
	}
	if d.Auth == nil {
		d.Auth = &mockAuth{user: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			if id != testUser.ID {
				return domain.User{}, domain.ErrNotFound
			}
			return testUser, nil
		}}
	}
	if d.Prefs == nil {
		d.Prefs = prefs.Static(prefs.Default())
	}
	return handler.NewServer(d).Handler(), d.Sessions
}

// signedIn attaches a valid session cookie for testUser to req.
func signedIn(t *testing.T, sm *auth.SessionManager, req *http.Request) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Issue(rec, testUser.ID))
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// do serves req and returns the recorder.
func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeError reads the error envelope.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func tripFixture() domain.Trip {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Travel 1",
		OwnerID:   testUser.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
