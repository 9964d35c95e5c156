package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// IdentityProvider is an external sign-in provider.
type IdentityProvider interface {
	// AuthCodeURL is where the browser is sent to sign in.
	AuthCodeURL(state string) string
	// Exchange redeems an authorization code and returns the verified email.
	Exchange(ctx context.Context, code string) (string, error)
}

// OIDC is an IdentityProvider backed by an OpenID Connect issuer.
type OIDC struct {
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewOIDC discovers the issuer's endpoints. It performs network I/O.
func NewOIDC(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (*OIDC, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("auth.NewOIDC: discover %s: %w", issuer, err)
	}
	return &OIDC{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (o *OIDC) AuthCodeURL(state string) string {
	return o.config.AuthCodeURL(state)
}

func (o *OIDC) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := o.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("auth.OIDC.Exchange: %w", err)
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", errors.New("auth.OIDC.Exchange: no id_token in token response")
	}
	idToken, err := o.verifier.Verify(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("auth.OIDC.Exchange: verify: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified *bool  `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", fmt.Errorf("auth.OIDC.Exchange: claims: %w", err)
	}
	if claims.Email == "" {
		return "", errors.New("auth.OIDC.Exchange: id_token has no email claim")
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return "", errors.New("auth.OIDC.Exchange: email not verified")
	}
	return claims.Email, nil
}
