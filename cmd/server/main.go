package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/microsite/internal/config"
	"github.com/Simplici0/microsite/internal/db"
	"github.com/Simplici0/microsite/internal/migrations"
	"github.com/Simplici0/microsite/internal/sections"
	"github.com/Simplici0/microsite/internal/seed"
	"github.com/Simplici0/microsite/internal/store"
)

const maxBodyBytes = 1 << 20

type server struct {
	auth     *authService
	store    *store.Store
	registry *sections.Registry
}

func newServer(database *sql.DB, sessionSecret string) *server {
	return &server{
		auth:     newAuthService(database, sessionSecret),
		store:    store.New(database),
		registry: sections.DefaultRegistry(),
	}
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		DefaultTheme:  cfg.DefaultTheme,
	})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	log.Printf("seed: %d inserts, %d updates", stats.Inserts, stats.Updates)

	srv := newServer(database, cfg.SessionSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/calculator/{mode}/parameters", s.handleCalculatorParameters)
		r.Post("/calculator/{mode}/compute", s.handleCalculatorCompute)

		r.Get("/themes/{themeKey}", s.handleGetTheme)
		r.Get("/themes/{themeKey}/calculator", s.handleGetCalculator)
		r.Get("/themes/{themeKey}/calculator/report.xlsx", s.handleCalculatorExcel)
		r.Get("/themes/{themeKey}/calculator/report.pdf", s.handleCalculatorPDF)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/themes", s.handleListThemes)
			r.Post("/themes/{themeKey}/clone", s.handleCloneTheme)

			r.Put("/themes/{themeKey}/sections", s.handleReplaceSections)
			r.Post("/themes/{themeKey}/sections/reorder", s.handleReorderSections)
			r.Patch("/themes/{themeKey}/sections/{id}", s.handleUpdateSection)
			r.Post("/themes/{themeKey}/sections/{id}/toggle", s.handleToggleSection)
			r.Post("/themes/{themeKey}/sections/{id}/duplicate", s.handleDuplicateSection)
			r.Delete("/themes/{themeKey}/sections/{id}", s.handleDeleteSection)

			r.Patch("/themes/{themeKey}/calculator", s.handleEditCalculator)
			r.Put("/themes/{themeKey}/calculator/{mode}", s.handleSaveCalculator)
		})
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// readBody returns the request body, limited to maxBodyBytes.
func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBodyBytes {
		return nil, errors.New("request body too large")
	}
	return data, nil
}

func decodeJSONBody(r *http.Request, v any) error {
	data, err := readBody(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeStoreError(w http.ResponseWriter, themeKey string, err error) {
	switch {
	case errors.Is(err, store.ErrThemeNotFound):
		writeError(w, http.StatusNotFound, "La cotización no existe.")
	case errors.Is(err, store.ErrThemeExists):
		writeError(w, http.StatusConflict, "Ya existe una cotización con esa clave.")
	case errors.Is(err, store.ErrInvalidThemeKey):
		writeError(w, http.StatusBadRequest, "La clave de la cotización es obligatoria.")
	default:
		log.Printf("theme %s: %v", themeKey, err)
		writeError(w, http.StatusInternalServerError, "No se pudo completar la operación. Intenta de nuevo.")
	}
}
