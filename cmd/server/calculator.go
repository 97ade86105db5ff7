package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/microsite/internal/calculator"
	"github.com/Simplici0/microsite/internal/report"
)

type parametersResponse struct {
	Mode        calculator.Mode         `json:"mode"`
	Descriptors []calculator.Descriptor `json:"descriptors"`
	Defaults    calculator.ParameterSet `json:"defaults"`
}

type computeResponse struct {
	Params  calculator.ParameterSet `json:"params"`
	Metrics calculator.Metrics      `json:"metrics"`
}

type calculatorResponse struct {
	Document calculator.Document           `json:"document"`
	Metrics  map[string]calculator.Metrics `json:"metrics"`
}

// variantFromURL resolves the {mode} URL parameter and answers 404 when it
// names no variant.
func variantFromURL(w http.ResponseWriter, r *http.Request) (calculator.Variant, bool) {
	v, err := calculator.Lookup(calculator.Mode(chi.URLParam(r, "mode")))
	if err != nil {
		writeError(w, http.StatusNotFound, "Modo de cálculo desconocido.")
		return nil, false
	}
	return v, true
}

func (s *server) handleCalculatorParameters(w http.ResponseWriter, r *http.Request) {
	v, ok := variantFromURL(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, parametersResponse{
		Mode:        v.Mode(),
		Descriptors: v.Descriptors(),
		Defaults:    v.Defaults(),
	})
}

// handleCalculatorCompute recomputes metrics for a parameter set without
// persisting anything.
func (s *server) handleCalculatorCompute(w http.ResponseWriter, r *http.Request) {
	v, ok := variantFromURL(w, r)
	if !ok {
		return
	}

	var p calculator.ParameterSet
	if err := decodeJSONBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Los parámetros deben ser un objeto JSON.")
		return
	}

	doc, err := calculator.DefaultDocument().WithVariant(v.Mode(), p)
	if err != nil {
		writeError(w, http.StatusNotFound, "Modo de cálculo desconocido.")
		return
	}
	writeJSON(w, http.StatusOK, computeResponse{
		Params:  doc.Params(v.Mode()),
		Metrics: doc.Metrics(),
	})
}

func (s *server) handleGetCalculator(w http.ResponseWriter, r *http.Request) {
	themeKey := chi.URLParam(r, "themeKey")
	doc, err := calculator.Load(r.Context(), s.store, themeKey)
	if err != nil {
		writeStoreError(w, themeKey, err)
		return
	}

	metrics := make(map[string]calculator.Metrics, 2)
	for _, v := range calculator.Variants() {
		metrics[string(v.Mode())] = v.Compute(doc.Params(v.Mode()))
	}
	writeJSON(w, http.StatusOK, calculatorResponse{Document: doc, Metrics: metrics})
}

// handleSaveCalculator stores the parameters of one variant and makes it the
// active one. The other variant's stored parameters are kept.
func (s *server) handleSaveCalculator(w http.ResponseWriter, r *http.Request) {
	themeKey := chi.URLParam(r, "themeKey")
	v, ok := variantFromURL(w, r)
	if !ok {
		return
	}

	var p calculator.ParameterSet
	if err := decodeJSONBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Los parámetros deben ser un objeto JSON.")
		return
	}

	doc, err := calculator.Save(r.Context(), s.store, themeKey, v.Mode(), p)
	if err != nil {
		if errors.Is(err, calculator.ErrUnknownMode) {
			writeError(w, http.StatusNotFound, "Modo de cálculo desconocido.")
			return
		}
		writeStoreError(w, themeKey, err)
		return
	}
	log.Printf("theme %s: calculator %s saved", themeKey, v.Mode())

	writeJSON(w, http.StatusOK, computeResponse{
		Params:  doc.Params(v.Mode()),
		Metrics: doc.Metrics(),
	})
}

type calculatorEditRequest struct {
	Mode        calculator.Mode         `json:"mode"`
	Inputs      map[string]string       `json:"inputs"`
	Ingredients []calculator.Ingredient `json:"ingredients"`
}

// handleEditCalculator applies raw field inputs to a theme's stored document
// and saves the active variant. Unparsable inputs keep the stored value;
// omitting mode keeps the stored active mode.
func (s *server) handleEditCalculator(w http.ResponseWriter, r *http.Request) {
	themeKey := chi.URLParam(r, "themeKey")

	var req calculatorEditRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "La edición debe ser un objeto JSON.")
		return
	}

	ed, err := calculator.OpenEditor(r.Context(), s.store, themeKey)
	if err != nil {
		writeStoreError(w, themeKey, err)
		return
	}

	if err := applyCalculatorEdit(ed, req); err != nil {
		writeError(w, http.StatusBadRequest, calculatorEditMessage(err))
		return
	}

	if ed.Dirty() {
		if err := ed.Save(r.Context(), s.store); err != nil {
			writeStoreError(w, themeKey, err)
			return
		}
		log.Printf("theme %s: calculator %s edited", ed.ThemeKey(), ed.ActiveMode())
	}

	writeJSON(w, http.StatusOK, computeResponse{
		Params:  ed.Params(),
		Metrics: ed.Metrics(),
	})
}

func applyCalculatorEdit(ed *calculator.Editor, req calculatorEditRequest) error {
	if req.Mode != "" {
		if err := ed.SetActiveMode(req.Mode); err != nil {
			return err
		}
	}
	for key, raw := range req.Inputs {
		if err := ed.SetInput(key, raw); err != nil {
			return err
		}
	}
	if req.Ingredients != nil {
		if ed.ActiveMode() != calculator.ModeCoextrusion {
			return fmt.Errorf("ingredients for %s: %w", ed.ActiveMode(), calculator.ErrUnknownParameter)
		}
		if err := ed.SetIngredients(req.Ingredients); err != nil {
			return err
		}
	}
	return nil
}

func calculatorEditMessage(err error) string {
	switch {
	case errors.Is(err, calculator.ErrUnknownMode):
		return "Modo de cálculo desconocido."
	case errors.Is(err, calculator.ErrUnknownParameter):
		return "El parámetro no existe en este modo de cálculo."
	default:
		return "Valor de parámetro inválido."
	}
}

func (s *server) handleCalculatorExcel(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report.Excel)
}

func (s *server) handleCalculatorPDF(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, r, "pdf", "application/pdf", report.PDF)
}

func (s *server) writeReport(w http.ResponseWriter, r *http.Request, ext, contentType string, render func(report.Report) ([]byte, error)) {
	themeKey := chi.URLParam(r, "themeKey")
	doc, err := calculator.Load(r.Context(), s.store, themeKey)
	if err != nil {
		writeStoreError(w, themeKey, err)
		return
	}

	data, err := render(report.Build(themeKey, doc))
	if err != nil {
		log.Printf("theme %s: render %s report: %v", themeKey, ext, err)
		writeError(w, http.StatusInternalServerError, "No se pudo generar el reporte.")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="calculadora-%s.%s"`, themeKey, ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
