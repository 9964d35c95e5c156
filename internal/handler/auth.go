package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/travel-planner/internal/auth"
	"github.com/pkordes/travel-planner/internal/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// requireUser resolves the session cookie to a user and stores it in the
// request context. Requests without a valid session get 401.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.Sessions.CurrentUserID(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "sign in required")
			return
		}
		user, err := s.Auth.User(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.Sessions.Clear(w)
				writeError(w, http.StatusUnauthorized, "unauthorized", "sign in required")
				return
			}
			respondError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}

// currentUser returns the user stored by requireUser.
func currentUser(r *http.Request) domain.User {
	u, _ := auth.UserFromContext(r.Context())
	return u
}

// signUp handles POST /auth/signup and signs the new user in.
func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	user, err := s.Auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Sessions.Issue(w, user.ID); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// logIn handles POST /auth/login.
func (s *Server) logIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	user, err := s.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Sessions.Issue(w, user.ID); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// logOut handles POST /auth/logout. It succeeds without a session too.
func (s *Server) logOut(w http.ResponseWriter, _ *http.Request) {
	s.Sessions.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /auth/me.
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

// requestPasswordReset handles POST /auth/password-reset. The response is
// the same whether or not the email is registered.
func (s *Server) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// confirmPasswordReset handles POST /auth/password-reset/confirm.
func (s *Server) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Auth.ConfirmPasswordReset(r.Context(), req.Token, req.Password); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// oauthLogin handles GET /auth/oauth/login by redirecting to the identity
// provider with a fresh state nonce.
func (s *Server) oauthLogin(w http.ResponseWriter, r *http.Request) {
	url, state, err := s.Auth.OAuthURL()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Sessions.IssueState(w, state); err != nil {
		respondError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// oauthCallback handles GET /auth/oauth/callback.
func (s *Server) oauthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !s.Sessions.VerifyState(w, r, q.Get("state")) {
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid oauth state")
		return
	}
	code := q.Get("code")
	if code == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "code is required")
		return
	}
	user, err := s.Auth.OAuthCallback(r.Context(), code)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Sessions.Issue(w, user.ID); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
