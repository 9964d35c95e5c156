// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/auth"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/imagestore"
	"github.com/pkordes/travel-planner/internal/prefs"
	"github.com/pkordes/travel-planner/internal/service"
)

// The interfaces below are defined in the consumer package so handler tests
// can inject mocks without touching the database or the service layer.

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (domain.Trip, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ItemServicer defines the list operations.
type ItemServicer interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	CreateBatch(ctx context.Context, ownerID, tripID uuid.UUID, kind domain.ListKind, items []domain.Item) ([]domain.Item, error)
	ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID, kind domain.ListKind) ([]domain.Item, error)
	Update(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error)
	Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error
}

// TemplateServicer defines the default-item operations.
type TemplateServicer interface {
	List(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error)
	Create(ctx context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error)
	Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error
}

// ExplorerServicer backs the collection browser.
type ExplorerServicer interface {
	Collections() []string
	Browse(ctx context.Context, ownerID uuid.UUID, collection string, p domain.PaginationParams) (service.ExplorerPage, error)
}

// ImageServicer backs uploads and the image listing.
type ImageServicer interface {
	Upload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (domain.Image, error)
	List(ctx context.Context) ([]domain.Image, error)
}

// ExportServicer flattens a trip for download.
type ExportServicer interface {
	Export(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Authenticator defines the account flows.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (domain.User, error)
	SignIn(ctx context.Context, email, password string) (domain.User, error)
	User(ctx context.Context, id uuid.UUID) (domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, password string) error
	OAuthEnabled() bool
	OAuthURL() (url, state string, err error)
	OAuthCallback(ctx context.Context, code string) (domain.User, error)
}

// Pinger reports database readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PreferenceReader serves process-wide preferences.
type PreferenceReader interface {
	Current() prefs.Preferences
}

// Deps are the Server's collaborators. Nil optional fields switch the
// corresponding surface off: Media unmounts /media, AuthLimiter disables
// rate limiting of /auth, DB makes /readyz always ready.
type Deps struct {
	Trips     TripServicer
	Items     ItemServicer
	Templates TemplateServicer
	Explorer  ExplorerServicer
	Images    ImageServicer
	Export    ExportServicer
	Auth      Authenticator
	Sessions  *auth.SessionManager
	Prefs     PreferenceReader

	DB          Pinger
	Media       http.Handler
	AuthLimiter func(http.Handler) http.Handler
}

// Server serves every API endpoint.
type Server struct {
	Deps
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{Deps: d}
}

// Handler returns the chi router with every route registered. Cross-cutting
// middleware (request IDs, logging, CORS, body limits) is applied by the caller.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.getHealth)
	r.Get("/readyz", s.getReady)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/auth", func(r chi.Router) {
		if s.AuthLimiter != nil {
			r.Use(s.AuthLimiter)
		}
		r.Post("/signup", s.signUp)
		r.Post("/login", s.logIn)
		r.Post("/logout", s.logOut)
		r.With(s.requireUser).Get("/me", s.me)
		r.Post("/password-reset", s.requestPasswordReset)
		r.Post("/password-reset/confirm", s.confirmPasswordReset)
		r.Get("/oauth/login", s.oauthLogin)
		r.Get("/oauth/callback", s.oauthCallback)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/trips", s.listTrips)
		r.Post("/trips", s.createTrip)
		r.Get("/trips/{tripID}", s.getTrip)
		r.Patch("/trips/{tripID}", s.renameTrip)
		r.Delete("/trips/{tripID}", s.deleteTrip)
		r.Get("/trips/{tripID}/export", s.exportTrip)

		r.Get("/trips/{tripID}/items/{kind}", s.listItems)
		r.Post("/trips/{tripID}/items/{kind}", s.createItem)
		r.Post("/trips/{tripID}/items/{kind}/batch", s.createItems)
		r.Patch("/items/{kind}/{itemID}", s.updateItem)
		r.Delete("/items/{kind}/{itemID}", s.deleteItem)

		r.Get("/templates/{kind}", s.listTemplates)
		r.Post("/templates/{kind}", s.createTemplate)
		r.Delete("/templates/{kind}/{templateID}", s.deleteTemplate)

		r.Get("/preferences", s.getPreferences)
		r.Get("/explorer", s.listCollections)
		r.Get("/explorer/{collection}", s.browseCollection)

		r.Get("/images", s.listImages)
		r.Post("/images", s.uploadImage)
	})

	if s.Media != nil {
		r.Handle(imagestore.MediaPrefix+"*", s.Media)
	}
	return r
}
