package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-medications/internal/domain/dosage"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc))
		mr.Post("/", createMedicationHandler(svc))

		// Catálogo agrupado por categoría (pantalla principal)
		mr.Get("/by-genre", listByGenreHandler(svc))

		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Put("/{medicationID}", replaceMedicationHandler(svc))
		mr.Patch("/{medicationID}", patchMedicationHandler(svc))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc))
	})

	r.Get("/genres", listGenresHandler())
}

// medicationRequest es el cuerpo para crear o reemplazar un medicamento.
// dosageTiming acepta un arreglo o un string con un arreglo JSON.
type medicationRequest struct {
	Name         string            `json:"name"`
	Effects      string            `json:"effects"`
	Precautions  string            `json:"precautions"`
	DosageAmount string            `json:"dosageAmount"`
	DosageTiming dosage.TimingList `json:"dosageTiming" swaggertype:"array,string"`
	Genre        dosage.Genre      `json:"genre" enums:"解熱鎮痛,ピル,ビタミン,対症療法,頭痛,抗生物質,漢方薬,外用薬,その他"`
}

type patchMedicationRequest struct {
	Name         *string            `json:"name"`
	Effects      *string            `json:"effects"`
	Precautions  *string            `json:"precautions"`
	DosageAmount *string            `json:"dosageAmount"`
	DosageTiming *dosage.TimingList `json:"dosageTiming" swaggertype:"array,string"`
	Genre        *dosage.Genre      `json:"genre"`
}

// MedicationResponse representa un medicamento devuelto por la API.
type MedicationResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Effects      string            `json:"effects"`
	Precautions  string            `json:"precautions"`
	DosageAmount string            `json:"dosageAmount"`
	DosageTiming dosage.TimingList `json:"dosageTiming" swaggertype:"array,string"`
	Genre        dosage.Genre      `json:"genre"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type genreGroupResponse struct {
	Genre       dosage.Genre         `json:"genre"`
	Medications []MedicationResponse `json:"medications"`
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Description Devuelve el catálogo completo ordenado por nombre.
// @Tags medications
// @Produce json
// @Success 200 {array} MedicationResponse
// @Failure 500 {string} string "internal error"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]MedicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, ToResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listByGenreHandler godoc
// @Summary Listar medicamentos por categoría
// @Description Agrupa el catálogo por categoría en el orden de la pantalla principal (頭痛, 解熱鎮痛, ピル, 漢方薬, 対症療法, ビタミン, 抗生物質, その他); el resto va al final por nombre.
// @Tags medications
// @Produce json
// @Success 200 {array} genreGroupResponse
// @Failure 500 {string} string "internal error"
// @Router /medications/by-genre [get]
func listByGenreHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.GroupByGenre(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]genreGroupResponse, 0, len(groups))
		for _, g := range groups {
			meds := make([]MedicationResponse, 0, len(g.Medications))
			for _, m := range g.Medications {
				meds = append(meds, ToResponse(m))
			}
			out = append(out, genreGroupResponse{Genre: g.Genre, Medications: meds})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Description Registra un medicamento. name, dosageAmount y una categoría válida son obligatorios; las etiquetas fuera del vocabulario se descartan.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body medicationRequest true "Datos del medicamento"
// @Success 201 {object} MedicationResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), req.input())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToResponse(m))
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicamento
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} MedicationResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

// replaceMedicationHandler godoc
// @Summary Reemplazar medicamento
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body medicationRequest true "Datos completos del medicamento"
// @Success 200 {object} MedicationResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [put]
func replaceMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Replace(r.Context(), chi.URLParam(r, "medicationID"), req.input())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

// patchMedicationHandler godoc
// @Summary Actualizar medicamento parcialmente
// @Description Solo se modifican los campos enviados (por ejemplo {"genre":"漢方薬"}).
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body patchMedicationRequest true "Campos a modificar"
// @Success 200 {object} MedicationResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [patch]
func patchMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req patchMedicationRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Patch(r.Context(), chi.URLParam(r, "medicationID"), PatchInput{
			Name:         req.Name,
			Effects:      req.Effects,
			Precautions:  req.Precautions,
			DosageAmount: req.DosageAmount,
			DosageTiming: req.DosageTiming,
			Genre:        req.Genre,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

// deleteMedicationHandler godoc
// @Summary Eliminar medicamento
// @Tags medications
// @Param medicationID path string true "ID del medicamento"
// @Success 204
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "medicationID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listGenresHandler godoc
// @Summary Listar categorías
// @Tags medications
// @Produce json
// @Success 200 {array} string
// @Router /genres [get]
func listGenresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, dosage.Genres)
	}
}

func (req medicationRequest) input() CreateInput {
	return CreateInput{
		Name:         req.Name,
		Effects:      req.Effects,
		Precautions:  req.Precautions,
		DosageAmount: req.DosageAmount,
		DosageTiming: req.DosageTiming,
		Genre:        req.Genre,
	}
}

// ToResponse se exporta porque sets y prescriptions devuelven medicamentos con la misma forma.
func ToResponse(m Medication) MedicationResponse {
	return MedicationResponse{
		ID:           m.ID,
		Name:         m.Name,
		Effects:      m.Effects,
		Precautions:  m.Precautions,
		DosageAmount: m.DosageAmount,
		DosageTiming: m.DosageTiming,
		Genre:        m.Genre,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
