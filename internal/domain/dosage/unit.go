package dosage

// DoseUnit resume cómo se escribe la dosis según la categoría.
type DoseUnit struct {
	Suffix  string
	summary func(amount string) string
}

// Summary arma la línea "1回 ..." de la columna 用法用量.
func (u DoseUnit) Summary(amount string) string {
	return u.summary(amount)
}

var (
	topicalUnit = DoseUnit{
		Suffix:  "",
		summary: func(string) string { return "1回適量" },
	}
	packetUnit = countedUnit("包")
	tabletUnit = countedUnit("錠")
)

func countedUnit(suffix string) DoseUnit {
	return DoseUnit{
		Suffix: suffix,
		summary: func(amount string) string {
			return "1回 " + amount + suffix
		},
	}
}

// ResolveUnit: 外用薬 sin sufijo, 漢方薬 en 包, el resto (incluidas categorías desconocidas) en 錠.
func ResolveUnit(genre Genre) DoseUnit {
	switch NormalizeGenre(string(genre)) {
	case GenreTopical:
		return topicalUnit
	case GenreKampo:
		return packetUnit
	default:
		return tabletUnit
	}
}
