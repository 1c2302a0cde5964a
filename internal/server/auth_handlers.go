package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"netdash/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string           `json:"token"`
	ExpiresAt   time.Time        `json:"expiresAt"`
	User        auth.User        `json:"user"`
	Permissions auth.Permissions `json:"permissions"`
}

type meResponse struct {
	User        auth.User        `json:"user"`
	Permissions auth.Permissions `json:"permissions"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.directory.Authenticate(req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrUserInactive):
		writeError(w, http.StatusForbidden, err.Error())
		return
	case err != nil:
		s.logger.Info("login rejected", zap.String("username", req.Username))
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	sess := s.sessions.Create(user.ID)
	s.logger.Info("login", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	writeJSON(w, http.StatusOK, loginResponse{
		Token:       sess.Token,
		ExpiresAt:   sess.ExpiresAt,
		User:        user,
		Permissions: user.Role.Permissions(),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := currentSession(r); ok {
		s.sessions.Revoke(sess.Token)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)
	writeJSON(w, http.StatusOK, meResponse{User: user, Permissions: user.Role.Permissions()})
}
