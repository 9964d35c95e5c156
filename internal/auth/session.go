package auth

import (
	"crypto/sha256"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const (
	// CookieName carries the signed, encrypted session.
	CookieName = "planner_session"

	stateCookieName = "planner_oauth_state"
	sessionTTL      = 7 * 24 * time.Hour
	stateTTL        = 10 * time.Minute
)

type sessionValue struct {
	UserID string `json:"uid"`
	Exp    int64  `json:"exp"`
}

// SessionManager issues and reads session cookies.
type SessionManager struct {
	codec  *securecookie.SecureCookie
	secure bool
	now    func() time.Time
}

// NewSessionManager derives the cookie keys from secret. Cookies are marked
// Secure unless baseURL is plain http.
func NewSessionManager(secret, baseURL string) *SessionManager {
	hash := sha256.Sum256([]byte(secret))
	block := sha256.Sum256(append([]byte("block:"), secret...))

	sc := securecookie.New(hash[:], block[:])
	sc.MaxAge(int(sessionTTL.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})

	secure := true
	if base, err := url.Parse(baseURL); err == nil && base.Scheme != "https" {
		secure = false
	}
	return &SessionManager{codec: sc, secure: secure, now: time.Now}
}

// Issue sets a session cookie for userID.
func (m *SessionManager) Issue(w http.ResponseWriter, userID uuid.UUID) error {
	exp := m.now().Add(sessionTTL)
	encoded, err := m.codec.Encode(CookieName, sessionValue{UserID: userID.String(), Exp: exp.Unix()})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
	})
}

// CurrentUserID extracts the user ID from the request session if present
// and unexpired.
func (m *SessionManager) CurrentUserID(r *http.Request) (uuid.UUID, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return uuid.Nil, false
	}

	var v sessionValue
	if err := m.codec.Decode(CookieName, c.Value, &v); err != nil {
		return uuid.Nil, false
	}
	if time.Unix(v.Exp, 0).Before(m.now()) {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(v.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// IssueState stores the OAuth state nonce in a short-lived cookie.
func (m *SessionManager) IssueState(w http.ResponseWriter, state string) error {
	encoded, err := m.codec.Encode(stateCookieName, state)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    encoded,
		Path:     "/auth/oauth",
		Expires:  m.now().Add(stateTTL),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// VerifyState reports whether state matches the nonce cookie, and clears it.
func (m *SessionManager) VerifyState(w http.ResponseWriter, r *http.Request, state string) bool {
	c, err := r.Cookie(stateCookieName)
	if err != nil {
		return false
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Path: "/auth/oauth", MaxAge: -1})

	var want string
	if err := m.codec.Decode(stateCookieName, c.Value, &want); err != nil {
		return false
	}
	return want != "" && want == state
}
