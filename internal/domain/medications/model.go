package medications

import (
	"time"

	"clinic-medications/internal/domain/dosage"
)

// Medication es un medicamento del catálogo de la clínica.
type Medication struct {
	ID string

	Name        string
	Effects     string
	Precautions string

	DosageAmount string            // "1", "0.5"
	DosageTiming dosage.TimingList // etiquetas crudas (起床時, 朝食後, ...)
	Genre        dosage.Genre

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dosage devuelve la vista que usa el armado de la tabla de administración.
func (m Medication) Dosage() dosage.Medication {
	return dosage.Medication{
		ID:           m.ID,
		Name:         m.Name,
		Genre:        m.Genre,
		DosageAmount: m.DosageAmount,
		DosageTiming: m.DosageTiming,
	}
}

// GenreGroup agrupa medicamentos de una misma categoría para el listado.
type GenreGroup struct {
	Genre       dosage.Genre
	Medications []Medication
}

// GenreOrder es el orden de categorías en la pantalla principal.
// 外用薬 no figura: las categorías fuera de la lista van al final por nombre.
var GenreOrder = []dosage.Genre{
	dosage.GenreHeadache,
	dosage.GenreAntipyretic,
	dosage.GenrePill,
	dosage.GenreKampo,
	dosage.GenreSymptomatic,
	dosage.GenreVitamin,
	dosage.GenreAntibiotic,
	dosage.GenreOther,
}
