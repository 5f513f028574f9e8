package prescriptions

import (
	"time"

	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/medications"
)

// Columns son los encabezados de la hoja, en orden.
var Columns = []string{
	"名前 形 色",
	"飲み方",
	"用法用量",
	"日数",
	"効能効果",
	"注意事項(注意が必要な方)",
}

const (
	PrescribedLabel = "調剤年月日"
	NoticeLabel     = "注意事項"
)

// Selection es un medicamento elegido para la hoja.
// Days <= 0 se toma como 1; Unit vacío deja decidir a la política de unidades.
type Selection struct {
	MedicationID string
	Days         int
	Unit         string
}

type Request struct {
	PatientName  string
	PrescribedAt time.Time
	Items        []Selection
}

// Clinic es el bloque de pie de hoja.
type Clinic struct {
	Name    string
	Address string
	Phone   string
	Notice  string
}

type Row struct {
	Medication medications.Medication
	Layout     dosage.TableLayout
}

// Sheet es el documento completo que se entrega al paciente.
type Sheet struct {
	Title        string
	PatientName  string
	PrescribedAt time.Time
	Columns      []string
	Rows         []Row
	Clinic       Clinic
}

// PrescribedDate formatea la fecha como la muestra la hoja impresa (2024/4/1).
func (s Sheet) PrescribedDate() string {
	return s.PrescribedAt.Format("2006/1/2")
}
