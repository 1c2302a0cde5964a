package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"netdash/internal/auth"
)

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.directory.List())
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req auth.NewUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.directory.Add(req)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	s.logger.Info("user added", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r)
	id := mux.Vars(r)["id"]
	if err := s.directory.Delete(actor.ID, id); err != nil {
		s.writeUserError(w, err)
		return
	}
	s.sessions.RevokeUser(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r)
	user, err := s.directory.ToggleStatus(actor.ID, mux.Vars(r)["id"])
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	if user.Status != auth.StatusActive {
		s.sessions.RevokeUser(user.ID)
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrDuplicateUser):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidUser):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrSelfModify):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		s.logger.Error("user operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
