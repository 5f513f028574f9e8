package dosage

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/text/width"
)

// TimingList es dosageTiming tal como viaja: puede llegar como arreglo JSON
// o como string con un arreglo JSON adentro (datos legacy). Nunca falla al
// decodificar: lo ilegible queda como lista vacía.
type TimingList []string

func (l *TimingList) UnmarshalJSON(data []byte) error {
	*l = ParseTimingList(data)
	return nil
}

// MarshalJSON siempre emite un arreglo (nunca null).
func (l TimingList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// ParseTimingList acepta `["朝食後"]`, `"[\"朝食後\"]"`, `null`, `""` o nada.
func ParseTimingList(data []byte) TimingList {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return TimingList{}
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		return nonNil(arr)
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return TimingList{}
	}
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return TimingList{}
	}
	if err := json.Unmarshal([]byte(encoded), &arr); err != nil {
		return TimingList{}
	}
	return nonNil(arr)
}

func nonNil(arr []string) TimingList {
	if arr == nil {
		return TimingList{}
	}
	return TimingList(arr)
}

// Known devuelve solo las etiquetas del vocabulario, normalizadas y sin repetir.
func (l TimingList) Known() TimingList {
	out := make(TimingList, 0, len(l))
	seen := map[Timing]struct{}{}
	for _, raw := range l {
		t := NormalizeTiming(raw)
		if !IsKnownTiming(t) {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, string(t))
	}
	return out
}

// NormalizeTiming pliega variantes de ancho (１２時間後 -> 12時間後, ｷ -> キ) y recorta espacios.
// Unknown devuelve las etiquetas que no están en el vocabulario, tal como llegaron.
func (l TimingList) Unknown() TimingList {
	var out TimingList
	for _, raw := range l {
		if !IsKnownTiming(NormalizeTiming(raw)) {
			out = append(out, raw)
		}
	}
	return out
}

func NormalizeTiming(raw string) Timing {
	return Timing(fold(raw))
}

// NormalizeGenre aplica la misma normalización que NormalizeTiming.
func NormalizeGenre(raw string) Genre {
	return Genre(fold(raw))
}

func fold(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

// Tags es el conjunto semántico de etiquetas de un medicamento. Conserva la
// forma cruda para mostrarla en la columna de resumen.
type Tags struct {
	raw []string
	set map[Timing]struct{}
}

func NewTags(raw ...string) Tags {
	t := Tags{
		raw: append([]string(nil), raw...),
		set: make(map[Timing]struct{}, len(raw)),
	}
	for _, r := range raw {
		t.set[NormalizeTiming(r)] = struct{}{}
	}
	return t
}

func (t Tags) Has(timing Timing) bool {
	_, ok := t.set[timing]
	return ok
}

func (t Tags) HasAny(timings ...Timing) bool {
	for _, tm := range timings {
		if t.Has(tm) {
			return true
		}
	}
	return false
}

// Raw devuelve las etiquetas tal como llegaron, en su orden original.
func (t Tags) Raw() []string {
	return append([]string(nil), t.raw...)
}

func (t Tags) Len() int { return len(t.set) }
