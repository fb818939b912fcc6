package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"

	"emberguard/internal/app"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.authSvc.SessionTTL().Seconds()),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req credentials
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := s.authSvc.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.setSessionCookie(w, r, token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.authSvc.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.WithError(err).Warn("logout failed")
		}
	}
	clearCookie(w, sessionCookie)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetupUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req credentials
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err := s.authSvc.CreateInitialUser(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, app.ErrUsersExist):
		writeError(w, http.StatusConflict, err)
		return
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	u := currentUser(r)
	if u == nil {
		writeError(w, http.StatusUnauthorized, errors.New("not logged in"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sso_enabled": s.oidcConfig.Enabled,
	})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if !s.oidcConfig.Enabled {
		writeError(w, http.StatusNotFound, errors.New("sso disabled"))
		return
	}
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // cross-site redirect back from the provider
		MaxAge:   300,
	})
	http.Redirect(w, r, s.oidcConfig.OAuth2Config.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if !s.oidcConfig.Enabled {
		writeError(w, http.StatusNotFound, errors.New("sso disabled"))
		return
	}

	state, err := r.Cookie("oauth_state")
	if err != nil || r.URL.Query().Get("state") != state.Value {
		writeError(w, http.StatusBadRequest, errors.New("invalid state"))
		return
	}
	clearCookie(w, "oauth_state")

	token, err := s.oidcConfig.OAuth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.logger.WithError(err).Warn("sso token exchange failed")
		writeError(w, http.StatusBadGateway, errors.New("failed to exchange token"))
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		writeError(w, http.StatusBadGateway, errors.New("no id_token"))
		return
	}

	verifier := s.oidcConfig.Provider.Verifier(&oidc.Config{ClientID: s.oidcConfig.OAuth2Config.ClientID})
	idToken, err := verifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		s.logger.WithError(err).Warn("sso id token rejected")
		writeError(w, http.StatusUnauthorized, errors.New("failed to verify token"))
		return
	}

	var claims struct {
		Email string `json:"email"`
		Sub   string `json:"sub"`
	}
	if err = idToken.Claims(&claims); err != nil {
		writeError(w, http.StatusBadGateway, errors.New("failed to parse claims"))
		return
	}

	username := claims.Email
	if username == "" {
		username = claims.Sub
	}

	sessionToken, err := s.authSvc.LoginWithUser(r.Context(), username)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.setSessionCookie(w, r, sessionToken)
	http.Redirect(w, r, "/", http.StatusFound)
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
