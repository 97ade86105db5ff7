package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/microsite/internal/sections"
	"github.com/Simplici0/microsite/internal/store"
)

type themeSummary struct {
	ThemeKey   string `json:"themeKey"`
	Company    string `json:"company"`
	Project    string `json:"project"`
	Theme      string `json:"theme"`
	IsTemplate bool   `json:"isTemplate"`
	IsHome     bool   `json:"isHome"`
	UpdatedAt  string `json:"updatedAt"`
}

type themeResponse struct {
	themeSummary
	Sections []sections.Section `json:"sections"`
	View     sections.View      `json:"view"`
}

func summarize(t store.Theme) themeSummary {
	return themeSummary{
		ThemeKey:   t.Key,
		Company:    t.Company,
		Project:    t.Project,
		Theme:      sections.ThemeFamily(t.Key),
		IsTemplate: t.IsTemplate,
		IsHome:     t.IsHome,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (s *server) handleListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.store.ListThemes(r.Context())
	if err != nil {
		writeStoreError(w, "", err)
		return
	}

	out := make([]themeSummary, 0, len(themes))
	for _, t := range themes {
		out = append(out, summarize(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetTheme returns the merged section list and the view for the
// caller. "?view=admin" asks for the admin layout; admin-only sections still
// need a session.
func (s *server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	themeKey := chi.URLParam(r, "themeKey")
	t, err := s.store.GetTheme(r.Context(), themeKey)
	if err != nil {
		writeStoreError(w, themeKey, err)
		return
	}

	authed := isAuthenticated(r, s.auth)
	viewer := sections.Viewer{
		Admin:         authed || r.URL.Query().Get("view") == "admin",
		Authenticated: authed,
	}
	list := s.registry.Merge(t.Key, t.SectionsConfig)

	writeJSON(w, http.StatusOK, themeResponse{
		themeSummary: summarize(t),
		Sections:     list,
		View:         s.registry.BuildView(t.Key, list, viewer),
	})
}

type cloneRequest struct {
	NewKey string `json:"newKey"`
}

func (s *server) handleCloneTheme(w http.ResponseWriter, r *http.Request) {
	themeKey := chi.URLParam(r, "themeKey")

	var req cloneRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}

	clone, err := s.store.CloneTheme(r.Context(), themeKey, req.NewKey)
	if err != nil {
		writeStoreError(w, themeKey, err)
		return
	}
	log.Printf("theme %s cloned to %s", themeKey, clone.Key)

	writeJSON(w, http.StatusCreated, summarize(clone))
}

// handleReplaceSections overwrites the whole section list. The payload is
// merged against the defaults before it is stored.
func (s *server) handleReplaceSections(w http.ResponseWriter, r *http.Request) {
	themeKey := chi.URLParam(r, "themeKey")

	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	body = bytes.TrimSpace(body)
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil || items == nil {
		writeError(w, http.StatusBadRequest, "Las secciones deben ser una lista.")
		return
	}

	s.saveSections(w, r, themeKey, s.registry.Merge(themeKey, body))
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

func (s *server) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSONBody(r, &req); err != nil || req.From == nil || req.To == nil {
		writeError(w, http.StatusBadRequest, "from y to deben ser numéricos.")
		return
	}
	s.editSections(w, r, func(list []sections.Section) ([]sections.Section, error) {
		return sections.Move(list, *req.From, *req.To)
	})
}

func (s *server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var patch sections.Patch
	if err := decodeJSONBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	id := chi.URLParam(r, "id")
	s.editSections(w, r, func(list []sections.Section) ([]sections.Section, error) {
		return sections.Update(list, id, patch)
	})
}

func (s *server) handleToggleSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.editSections(w, r, func(list []sections.Section) ([]sections.Section, error) {
		return sections.ToggleVisibility(list, id)
	})
}

func (s *server) handleDuplicateSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.editSections(w, r, func(list []sections.Section) ([]sections.Section, error) {
		out, _, err := sections.Duplicate(list, id)
		return out, err
	})
}

func (s *server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.registry.IsDefault(chi.URLParam(r, "themeKey"), id) {
		writeError(w, http.StatusConflict, "Las secciones predeterminadas solo se pueden ocultar.")
		return
	}
	s.editSections(w, r, func(list []sections.Section) ([]sections.Section, error) {
		return sections.Delete(list, id)
	})
}

// editSections applies op to the current merged list of the theme and stores
// the result.
func (s *server) editSections(w http.ResponseWriter, r *http.Request, op func([]sections.Section) ([]sections.Section, error)) {
	themeKey := chi.URLParam(r, "themeKey")
	t, err := s.store.GetTheme(r.Context(), themeKey)
	if err != nil {
		writeStoreError(w, themeKey, err)
		return
	}

	next, err := op(s.registry.Merge(t.Key, t.SectionsConfig))
	if err != nil {
		switch {
		case errors.Is(err, sections.ErrSectionNotFound):
			writeError(w, http.StatusNotFound, "La sección no existe.")
		case errors.Is(err, sections.ErrSectionLocked):
			writeError(w, http.StatusConflict, "La sección está bloqueada.")
		case errors.Is(err, sections.ErrInvalidMove):
			writeError(w, http.StatusBadRequest, "Posición inválida.")
		default:
			log.Printf("theme %s: edit sections: %v", themeKey, err)
			writeError(w, http.StatusInternalServerError, "No se pudo editar la sección.")
		}
		return
	}

	s.saveSections(w, r, t.Key, next)
}

func (s *server) saveSections(w http.ResponseWriter, r *http.Request, themeKey string, list []sections.Section) {
	data, err := json.Marshal(list)
	if err != nil {
		log.Printf("theme %s: encode sections: %v", themeKey, err)
		writeError(w, http.StatusInternalServerError, "No se pudo guardar la configuración.")
		return
	}
	if err := s.store.UpdateSectionsConfig(r.Context(), themeKey, data); err != nil {
		writeStoreError(w, themeKey, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
