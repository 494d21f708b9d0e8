package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"asre_hazir/internal/domain"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleManageListing(w http.ResponseWriter, r *http.Request) {
	q, err := s.limits.NewQuery(domain.CategoryAll, "", s.feedCfg.MaxLimit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	articles, err := s.articles.ListFeed(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{"articles": articles})
}

func (s *Server) handlePublishNews(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, r, domain.ErrInvalidQuery)
		return
	}

	draft := domain.Draft{
		Title:       r.FormValue("title"),
		Content:     r.FormValue("content"),
		Section:     r.FormValue("section"),
		Category:    r.FormValue("category"),
		SubCategory: r.FormValue("subCategory"),
		TitleFont:   r.FormValue("titleFont"),
		ContentFont: r.FormValue("contentFont"),
		VideoURL:    r.FormValue("videoUrl"),
	}

	upload, cleanup, err := formUpload(r, "image")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer cleanup()

	article, err := s.news.Publish(r.Context(), *session, draft, upload)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// a successful publish supersedes the autosaved draft
	if err := s.drafts.Clear(r.Context(), session.UserID); err != nil {
		s.logger.Error("draft cleanup after publish failed", "author_id", session.UserID, "error", err)
	}

	s.respondJSON(w, http.StatusCreated, article)
}

func (s *Server) handleUpdateNews(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, r, domain.ErrInvalidQuery)
		return
	}

	patch := patchFromForm(r)

	upload, cleanup, err := formUpload(r, "image")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer cleanup()

	result, err := s.news.Update(r.Context(), *session, id, patch, upload)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"article":     result.Article,
		"imageFailed": result.ImageFailed,
	})
}

func (s *Server) handleDeleteNews(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	id := chi.URLParam(r, "id")

	if err := s.news.Delete(r.Context(), *session, id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminListAds(w http.ResponseWriter, r *http.Request) {
	ads, err := s.ads.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"advertisements": ads})
}

func (s *Server) handleCreateAd(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, r, domain.ErrInvalidQuery)
		return
	}

	upload, cleanup, err := formUpload(r, "image")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer cleanup()

	ad, err := s.ads.Create(r.Context(), *session, r.FormValue("placement"), r.FormValue("link"), upload)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, ad)
}

func (s *Server) handleUpdateAd(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, r, domain.ErrInvalidQuery)
		return
	}

	upload, cleanup, err := formUpload(r, "image")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer cleanup()

	ad, err := s.ads.Update(r.Context(), *session, id, r.FormValue("placement"), r.FormValue("link"), upload)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, ad)
}

func (s *Server) handleDeleteAd(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	id := chi.URLParam(r, "id")

	if err := s.ads.Delete(r.Context(), *session, id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	draft, err := s.drafts.Get(r.Context(), session.UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, draft)
}

func (s *Server) handleTouchDraft(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	var draft domain.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, r, domain.ErrInvalidQuery)
		return
	}

	now := time.Now()
	draft.UpdatedAt = &now
	s.drafts.Touch(session.UserID, draft)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleClearDraft(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	if err := s.drafts.Clear(r.Context(), session.UserID); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// formUpload pulls the named file out of a parsed multipart form. A
// missing file is not an error; the caller decides whether the upload
// is mandatory.
func formUpload(r *http.Request, field string) (*domain.MediaUpload, func(), error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, domain.ErrInvalidQuery
	}

	upload := &domain.MediaUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	}
	return upload, func() { file.Close() }, nil
}

// patchFromForm treats only the fields present in the form as edits,
// so an empty form value still counts as "clear this field" when the
// client sends the key.
func patchFromForm(r *http.Request) domain.ArticlePatch {
	var patch domain.ArticlePatch
	if r.MultipartForm == nil {
		return patch
	}

	get := func(key string) *string {
		values, ok := r.MultipartForm.Value[key]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[0]
		return &v
	}

	patch.Title = get("title")
	patch.Content = get("content")
	patch.Section = get("section")
	patch.Category = get("category")
	patch.SubCategory = get("subCategory")
	patch.TitleFont = get("titleFont")
	patch.ContentFont = get("contentFont")
	patch.VideoURL = get("videoUrl")
	return patch
}
