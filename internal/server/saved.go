package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"asre_hazir/internal/domain"
)

func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	items, err := s.saved.List(r.Context(), session.UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{"savedNews": items})
}

func (s *Server) handleSaveNews(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	var req struct {
		NewsID string `json:"newsId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewsID == "" {
		s.respondError(w, r, domain.ErrInvalidQuery)
		return
	}

	item, err := s.saved.Save(r.Context(), session.UserID, req.NewsID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUnsaveNews(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	newsID := chi.URLParam(r, "newsID")

	if err := s.saved.Unsave(r.Context(), session.UserID, newsID); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSavedStatus(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	newsID := chi.URLParam(r, "newsID")

	saved, err := s.saved.IsSaved(r.Context(), session.UserID, newsID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}
