package dosage

// Timing es una etiqueta cruda de momento de toma, tal como la guarda el medicamento.
type Timing string

const (
	TimingOnWaking        Timing = "起床時"
	TimingBeforeBreakfast Timing = "朝食前"
	TimingAfterBreakfast  Timing = "朝食後"
	TimingBeforeLunch     Timing = "昼食前"
	TimingAfterLunch      Timing = "昼食後"
	TimingBeforeDinner    Timing = "夕食前"
	TimingAfterDinner     Timing = "夕食後"
	TimingBedtime         Timing = "就寝前"
	TimingFeverOrPain     Timing = "発熱・疼痛時"
	TimingFever           Timing = "発熱時"
	TimingNausea          Timing = "嘔気時"
	TimingHeadache        Timing = "頭痛時"
	TimingAsDirected      Timing = "指示通り"
	TimingBeforeEachMeal  Timing = "毎食前"
	TimingAfterEachMeal   Timing = "毎食後"
	TimingBetweenMeals    Timing = "毎食間"
	TimingOnSymptoms      Timing = "症状出現時"
	TimingTwelveHours     Timing = "12時間後"
)

// Timings es el vocabulario cerrado, en el orden en que lo muestran los formularios.
var Timings = []Timing{
	TimingOnWaking,
	TimingBeforeBreakfast,
	TimingAfterBreakfast,
	TimingBeforeLunch,
	TimingAfterLunch,
	TimingBeforeDinner,
	TimingAfterDinner,
	TimingBedtime,
	TimingFeverOrPain,
	TimingFever,
	TimingNausea,
	TimingHeadache,
	TimingAsDirected,
	TimingBeforeEachMeal,
	TimingAfterEachMeal,
	TimingBetweenMeals,
	TimingOnSymptoms,
	TimingTwelveHours,
}

var knownTimings = func() map[Timing]struct{} {
	m := make(map[Timing]struct{}, len(Timings))
	for _, t := range Timings {
		m[t] = struct{}{}
	}
	return m
}()

func IsKnownTiming(t Timing) bool {
	_, ok := knownTimings[t]
	return ok
}

// Slot es una columna canónica de la tabla de administración.
type Slot string

const (
	SlotWaking     Slot = "起床後"
	SlotMorning    Slot = "朝"
	SlotNoon       Slot = "昼"
	SlotEvening    Slot = "夕"
	SlotBedtime    Slot = "就寝前"
	SlotAsDirected Slot = "指示通り"

	SlotOnSymptoms  Slot = "症状出現時"
	SlotTwelveHours Slot = "12時間後"
)

// NormalSlots y SpecialSlots fijan el orden de columnas de cada forma de tabla.
var (
	NormalSlots  = []Slot{SlotWaking, SlotMorning, SlotNoon, SlotEvening, SlotBedtime, SlotAsDirected}
	SpecialSlots = []Slot{SlotOnSymptoms, SlotTwelveHours}
)

// Genre es la categoría del medicamento.
type Genre string

const (
	GenreAntipyretic Genre = "解熱鎮痛"
	GenrePill        Genre = "ピル"
	GenreVitamin     Genre = "ビタミン"
	GenreSymptomatic Genre = "対症療法"
	GenreHeadache    Genre = "頭痛"
	GenreAntibiotic  Genre = "抗生物質"
	GenreKampo       Genre = "漢方薬"
	GenreTopical     Genre = "外用薬"
	GenreOther       Genre = "その他"
)

var Genres = []Genre{
	GenreAntipyretic,
	GenrePill,
	GenreVitamin,
	GenreSymptomatic,
	GenreHeadache,
	GenreAntibiotic,
	GenreKampo,
	GenreOther,
	GenreTopical,
}

func IsKnownGenre(g Genre) bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}
