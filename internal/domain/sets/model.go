package sets

import (
	"time"

	"clinic-medications/internal/domain/medications"
)

// Set es un grupo con nombre de medicamentos que se recetan juntos.
type Set struct {
	ID   string
	Name string // único

	MedicationIDs []string // orden de inserción

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Detail es el set con sus medicamentos resueltos.
type Detail struct {
	Set         Set
	Medications []medications.Medication
}
