package prescriptions

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/medications"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetWriter serializa una hoja (xlsx en producción).
type SheetWriter interface {
	WriteSheet(w io.Writer, s Sheet) error
}

func RegisterRoutes(r chi.Router, svc *Service, writer SheetWriter) {
	r.Route("/prescriptions", func(pr chi.Router) {
		pr.Post("/preview", previewHandler(svc))
		if writer != nil {
			pr.Post("/export", exportHandler(svc, writer))
		}
	})
}

type selectionRequest struct {
	ID   string `json:"id"`
	Days int    `json:"days"`
	Unit string `json:"unit,omitempty"`
}

type sheetRequest struct {
	PatientName  string             `json:"patientName"`
	PrescribedAt *time.Time         `json:"prescribedAt,omitempty"`
	Items        []selectionRequest `json:"items"`
}

type rowResponse struct {
	Medication medications.MedicationResponse `json:"medication"`
	Layout     dosage.TableLayout             `json:"layout"`
}

type clinicResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type sheetResponse struct {
	Title          string         `json:"title"`
	PatientName    string         `json:"patientName"`
	PrescribedAt   time.Time      `json:"prescribedAt"`
	PrescribedDate string         `json:"prescribedDate"`
	Columns        []string       `json:"columns"`
	Rows           []rowResponse  `json:"rows"`
	Notice         string         `json:"notice"`
	Clinic         clinicResponse `json:"clinic"`
}

type missingResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

// previewHandler godoc
// @Summary Vista previa de la hoja de receta
// @Description Arma la hoja con una fila por medicamento, en el orden enviado. days <= 0 cuenta como 1; sin unit se usa la regla del medicamento o 日分.
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param payload body sheetRequest true "Paciente y medicamentos"
// @Success 200 {object} sheetResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {object} missingResponse
// @Router /prescriptions/preview [post]
func previewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest(w, r)
		if !ok {
			return
		}

		sheet, err := svc.Build(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSheetResponse(sheet))
	}
}

// exportHandler godoc
// @Summary Exportar la hoja de receta a xlsx
// @Tags prescriptions
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param payload body sheetRequest true "Paciente y medicamentos"
// @Success 200 {file} file
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {object} missingResponse
// @Router /prescriptions/export [post]
func exportHandler(svc *Service, writer SheetWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest(w, r)
		if !ok {
			return
		}

		sheet, err := svc.Build(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}

		// Se arma en memoria para no mandar un xlsx a medias si falla.
		var buf bytes.Buffer
		if err := writer.WriteSheet(&buf, sheet); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition",
			`attachment; filename="prescription-`+sheet.PrescribedAt.Format("20060102")+`.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var body sheetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return Request{}, false
	}

	req := Request{
		PatientName: body.PatientName,
		Items:       make([]Selection, 0, len(body.Items)),
	}
	if body.PrescribedAt != nil {
		req.PrescribedAt = *body.PrescribedAt
	}
	for _, it := range body.Items {
		req.Items = append(req.Items, Selection{MedicationID: it.ID, Days: it.Days, Unit: it.Unit})
	}
	return req, true
}

func toSheetResponse(s Sheet) sheetResponse {
	rows := make([]rowResponse, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, rowResponse{
			Medication: medications.ToResponse(row.Medication),
			Layout:     row.Layout,
		})
	}
	return sheetResponse{
		Title:          s.Title,
		PatientName:    s.PatientName,
		PrescribedAt:   s.PrescribedAt,
		PrescribedDate: s.PrescribedDate(),
		Columns:        s.Columns,
		Rows:           rows,
		Notice:         s.Clinic.Notice,
		Clinic: clinicResponse{
			Name:    s.Clinic.Name,
			Address: s.Clinic.Address,
			Phone:   s.Clinic.Phone,
		},
	}
}

func writeError(w http.ResponseWriter, err error) {
	var missing *MissingError
	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusNotFound, missingResponse{Error: "medication not found", Missing: missing.IDs})
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
