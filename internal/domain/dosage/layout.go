package dosage

import (
	"strconv"
	"strings"
)

// DefaultDaysUnit se usa cuando la selección no trae unidad.
const DefaultDaysUnit = "日分"

// Medication es la vista del medicamento que necesita el armado de la tabla.
type Medication struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Genre        Genre      `json:"genre"`
	DosageAmount string     `json:"dosageAmount"`
	DosageTiming TimingList `json:"dosageTiming"`
}

// Entry es una fila pedida: el medicamento más los días y la unidad elegidos al seleccionarlo.
type Entry struct {
	Medication Medication `json:"medication"`
	Days       int        `json:"days"`
	Unit       string     `json:"unit"`
}

// Borders indica qué bordes dibuja la celda.
type Borders struct {
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
}

type Cell struct {
	Text    string  `json:"text"`
	Borders Borders `json:"borders"`
}

// Column es una columna de la tabla: encabezado arriba, dosis abajo.
type Column struct {
	Slot   Slot `json:"slot"`
	Header Cell `json:"header"`
	Value  Cell `json:"value"`
}

// TableLayout describe la tabla de administración de un medicamento.
// Siempre tiene dos filas (encabezados + valores) y 6 o 2 columnas.
type TableLayout struct {
	MedicationID  string       `json:"medicationId"`
	Kind          ScheduleKind `json:"kind"`
	Columns       []Column     `json:"columns"`
	DosageSummary string       `json:"dosageSummary"`
	TimingText    string       `json:"timingText"`
	DaysText      string       `json:"daysText"`
}

// Rows devuelve la tabla como filas de celdas (encabezado, valores).
func (l TableLayout) Rows() [][]Cell {
	header := make([]Cell, 0, len(l.Columns))
	values := make([]Cell, 0, len(l.Columns))
	for _, c := range l.Columns {
		header = append(header, c.Header)
		values = append(values, c.Value)
	}
	return [][]Cell{header, values}
}

// Build arma la tabla de un medicamento. No falla nunca: categorías y
// etiquetas desconocidas caen en los valores por defecto.
func Build(med Medication, days int, unit string) TableLayout {
	tags := NewTags(med.DosageTiming...)
	kind := Classify(tags)

	var values []string
	switch kind {
	case ScheduleSpecial:
		values = []string{med.DosageAmount, med.DosageAmount}
	default:
		doses := Project(med.Genre, tags, med.DosageAmount)
		values = make([]string, 0, len(NormalSlots))
		for _, slot := range NormalSlots {
			values = append(values, doses[slot])
		}
	}

	return TableLayout{
		MedicationID:  med.ID,
		Kind:          kind,
		Columns:       columns(kind.Slots(), values),
		DosageSummary: ResolveUnit(med.Genre).Summary(med.DosageAmount),
		TimingText:    strings.Join(tags.Raw(), "\n"),
		DaysText:      strconv.Itoa(days) + unit,
	}
}

// BuildAll arma una tabla por entrada, respetando el orden recibido.
func BuildAll(entries []Entry) []TableLayout {
	out := make([]TableLayout, 0, len(entries))
	for _, e := range entries {
		out = append(out, Build(e.Medication, e.Days, e.Unit))
	}
	return out
}

func columns(slots []Slot, values []string) []Column {
	out := make([]Column, 0, len(slots))
	for i, slot := range slots {
		last := i == len(slots)-1
		out = append(out, Column{
			Slot: slot,
			Header: Cell{
				Text:    string(slot),
				Borders: Borders{Right: !last, Bottom: !last},
			},
			Value: Cell{Text: values[i]},
		})
	}
	return out
}
