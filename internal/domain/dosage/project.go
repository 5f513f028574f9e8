package dosage

// TopicalDose es el contenido de la columna 指示通り para 外用薬 (適量 en dos líneas).
const TopicalDose = "適\n量"

var (
	mealSlots = []Slot{SlotMorning, SlotNoon, SlotEvening}

	everyMealTimings = []Timing{TimingBetweenMeals, TimingBeforeEachMeal, TimingAfterEachMeal}

	slotTimings = map[Slot][]Timing{
		SlotWaking:     {TimingOnWaking},
		SlotMorning:    {TimingBeforeBreakfast, TimingAfterBreakfast},
		SlotNoon:       {TimingBeforeLunch, TimingAfterLunch},
		SlotEvening:    {TimingBeforeDinner, TimingAfterDinner},
		SlotBedtime:    {TimingBedtime},
		SlotAsDirected: {TimingFeverOrPain, TimingNausea, TimingHeadache, TimingAsDirected},
	}
)

type projection struct {
	genre  Genre
	tags   Tags
	amount string
}

// slotRule es un par predicado/acción. La primera regla cuyo predicado
// aplica decide el contenido de la columna; el resto no se evalúa.
type slotRule struct {
	name    string
	applies func(p projection, slot Slot) bool
	content func(p projection, slot Slot) string
}

// normalRules está ordenada por precedencia.
var normalRules = []slotRule{
	{
		name: "topical",
		applies: func(p projection, _ Slot) bool {
			return p.genre == GenreTopical
		},
		content: func(_ projection, slot Slot) string {
			if slot == SlotAsDirected {
				return TopicalDose
			}
			return ""
		},
	},
	{
		name: "every-meal",
		applies: func(p projection, slot Slot) bool {
			return p.tags.HasAny(everyMealTimings...) && containsSlot(mealSlots, slot)
		},
		content: func(p projection, _ Slot) string {
			return p.amount
		},
	},
	{
		name: "direct-match",
		applies: func(projection, Slot) bool {
			return true
		},
		content: func(p projection, slot Slot) string {
			if p.tags.HasAny(slotTimings[slot]...) {
				return p.amount
			}
			return ""
		},
	},
}

// SlotDoses es el contenido por columna de la tabla normal.
type SlotDoses map[Slot]string

// Project llena las seis columnas de la tabla normal.
func Project(genre Genre, tags Tags, amount string) SlotDoses {
	p := projection{genre: NormalizeGenre(string(genre)), tags: tags, amount: amount}

	out := make(SlotDoses, len(NormalSlots))
	for _, slot := range NormalSlots {
		out[slot] = evaluate(normalRules, p, slot)
	}
	return out
}

func evaluate(rules []slotRule, p projection, slot Slot) string {
	for _, r := range rules {
		if r.applies(p, slot) {
			return r.content(p, slot)
		}
	}
	return ""
}

func containsSlot(slots []Slot, s Slot) bool {
	for _, x := range slots {
		if x == s {
			return true
		}
	}
	return false
}
