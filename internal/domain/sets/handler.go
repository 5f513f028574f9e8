package sets

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"clinic-medications/internal/domain/medications"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sets", func(sr chi.Router) {
		sr.Get("/", listSetsHandler(svc))
		sr.Post("/", createSetHandler(svc))

		sr.Get("/{setName}", getSetHandler(svc))
		sr.Delete("/{setName}", deleteSetHandler(svc))

		sr.Post("/{setName}/medications", addMedicationsHandler(svc))
		sr.Delete("/{setName}/medications", removeMedicationsHandler(svc))
	})
}

type createSetRequest struct {
	Name          string   `json:"name"`
	MedicationIDs []string `json:"medicationIds"`
}

type membersRequest struct {
	MedicationIDs []string `json:"medicationIds"`
}

type setResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	MedicationIDs []string  `json:"medicationIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// setDetailResponse es el set con sus medicamentos, como lo consume la pantalla principal.
type setDetailResponse struct {
	ID          string                           `json:"id"`
	Name        string                           `json:"name"`
	Medications []medications.MedicationResponse `json:"medications"`
}

// listSetsHandler godoc
// @Summary Listar sets
// @Tags sets
// @Produce json
// @Success 200 {array} setResponse
// @Failure 500 {string} string "internal error"
// @Router /sets [get]
func listSetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]setResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toSetResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createSetHandler godoc
// @Summary Crear set
// @Description Crea un set con nombre único y, opcionalmente, sus primeros medicamentos.
// @Tags sets
// @Accept json
// @Produce json
// @Param payload body createSetRequest true "Nombre y medicamentos"
// @Success 201 {object} setResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 409 {string} string "set already exists"
// @Router /sets [post]
func createSetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := svc.Create(r.Context(), req.Name, req.MedicationIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSetResponse(s))
	}
}

// getSetHandler godoc
// @Summary Obtener set con sus medicamentos
// @Tags sets
// @Produce json
// @Param setName path string true "Nombre del set"
// @Success 200 {object} setDetailResponse
// @Failure 404 {string} string "set not found"
// @Router /sets/{setName} [get]
func getSetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), setName(r))
		if err != nil {
			writeError(w, err)
			return
		}

		meds := make([]medications.MedicationResponse, 0, len(d.Medications))
		for _, m := range d.Medications {
			meds = append(meds, medications.ToResponse(m))
		}
		writeJSON(w, http.StatusOK, setDetailResponse{
			ID:          d.Set.ID,
			Name:        d.Set.Name,
			Medications: meds,
		})
	}
}

// deleteSetHandler godoc
// @Summary Eliminar set
// @Tags sets
// @Param setName path string true "Nombre del set"
// @Success 204
// @Failure 404 {string} string "set not found"
// @Router /sets/{setName} [delete]
func deleteSetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), setName(r)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addMedicationsHandler godoc
// @Summary Agregar medicamentos al set
// @Tags sets
// @Accept json
// @Produce json
// @Param setName path string true "Nombre del set"
// @Param payload body membersRequest true "IDs a agregar"
// @Success 200 {object} setResponse
// @Failure 400 {string} string "invalid json / unknown medication"
// @Failure 404 {string} string "set not found"
// @Router /sets/{setName}/medications [post]
func addMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req membersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := svc.AddMedications(r.Context(), setName(r), req.MedicationIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSetResponse(s))
	}
}

// removeMedicationsHandler godoc
// @Summary Quitar medicamentos del set
// @Tags sets
// @Accept json
// @Produce json
// @Param setName path string true "Nombre del set"
// @Param payload body membersRequest true "IDs a quitar"
// @Success 200 {object} setResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "set not found"
// @Router /sets/{setName}/medications [delete]
func removeMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req membersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := svc.RemoveMedications(r.Context(), setName(r), req.MedicationIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSetResponse(s))
	}
}

// setName decodifica el nombre (suele venir en japonés, percent-encoded).
func setName(r *http.Request) string {
	raw := chi.URLParam(r, "setName")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func toSetResponse(s Set) setResponse {
	ids := s.MedicationIDs
	if ids == nil {
		ids = []string{}
	}
	return setResponse{
		ID:            s.ID,
		Name:          s.Name,
		MedicationIDs: ids,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "set not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "set already exists", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
