package dosage

// ScheduleKind distingue la tabla diaria de seis columnas de la de intervalo.
type ScheduleKind string

const (
	ScheduleNormal  ScheduleKind = "normal"
	ScheduleSpecial ScheduleKind = "special"
)

// Classify es Special solo si aparecen juntos 症状出現時 y 12時間後.
func Classify(tags Tags) ScheduleKind {
	if tags.Has(TimingOnSymptoms) && tags.Has(TimingTwelveHours) {
		return ScheduleSpecial
	}
	return ScheduleNormal
}

// Slots devuelve las columnas de la forma de tabla.
func (k ScheduleKind) Slots() []Slot {
	if k == ScheduleSpecial {
		return append([]Slot(nil), SpecialSlots...)
	}
	return append([]Slot(nil), NormalSlots...)
}
