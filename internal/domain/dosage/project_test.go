package dosage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_PerSlot(t *testing.T) {
	type want map[Slot]string

	tests := []struct {
		name  string
		genre Genre
		tags  []string
		want  want
	}{
		{
			name:  "on waking",
			genre: GenreOther,
			tags:  []string{"起床時"},
			want:  want{SlotWaking: "1"},
		},
		{
			name:  "before breakfast",
			genre: GenreOther,
			tags:  []string{"朝食前"},
			want:  want{SlotMorning: "1"},
		},
		{
			name:  "after breakfast",
			genre: GenreOther,
			tags:  []string{"朝食後"},
			want:  want{SlotMorning: "1"},
		},
		{
			name:  "before and after breakfast emit once",
			genre: GenreOther,
			tags:  []string{"朝食前", "朝食後"},
			want:  want{SlotMorning: "1"},
		},
		{
			name:  "lunch",
			genre: GenreOther,
			tags:  []string{"昼食前", "昼食後"},
			want:  want{SlotNoon: "1"},
		},
		{
			name:  "dinner",
			genre: GenreOther,
			tags:  []string{"夕食後"},
			want:  want{SlotEvening: "1"},
		},
		{
			name:  "bedtime",
			genre: GenreOther,
			tags:  []string{"就寝前"},
			want:  want{SlotBedtime: "1"},
		},
		{
			name:  "as needed tags land on 指示通り",
			genre: GenreAntipyretic,
			tags:  []string{"発熱・疼痛時", "嘔気時", "頭痛時"},
			want:  want{SlotAsDirected: "1"},
		},
		{
			name:  "as directed",
			genre: GenreOther,
			tags:  []string{"指示通り"},
			want:  want{SlotAsDirected: "1"},
		},
		{
			name:  "fever alone maps nowhere",
			genre: GenreOther,
			tags:  []string{"発熱時"},
			want:  want{},
		},
		{
			name:  "every meal after",
			genre: GenreOther,
			tags:  []string{"毎食後"},
			want:  want{SlotMorning: "1", SlotNoon: "1", SlotEvening: "1"},
		},
		{
			name:  "every meal before",
			genre: GenreOther,
			tags:  []string{"毎食前"},
			want:  want{SlotMorning: "1", SlotNoon: "1", SlotEvening: "1"},
		},
		{
			name:  "between meals does not fill waking",
			genre: GenreKampo,
			tags:  []string{"毎食間"},
			want:  want{SlotMorning: "1", SlotNoon: "1", SlotEvening: "1"},
		},
		{
			name:  "every meal plus bedtime",
			genre: GenreOther,
			tags:  []string{"毎食後", "就寝前", "起床時"},
			want:  want{SlotWaking: "1", SlotMorning: "1", SlotNoon: "1", SlotEvening: "1", SlotBedtime: "1"},
		},
		{
			name:  "topical ignores tags",
			genre: GenreTopical,
			tags:  []string{"朝食後", "毎食後", "就寝前"},
			want:  want{SlotAsDirected: TopicalDose},
		},
		{
			name:  "topical with no tags",
			genre: GenreTopical,
			tags:  nil,
			want:  want{SlotAsDirected: TopicalDose},
		},
		{
			name:  "unknown genre behaves like tablets",
			genre: Genre("サプリ"),
			tags:  []string{"朝食後"},
			want:  want{SlotMorning: "1"},
		},
		{
			name:  "unknown tags ignored",
			genre: GenreOther,
			tags:  []string{"食事中"},
			want:  want{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.genre, NewTags(tt.tags...), "1")

			assert.Len(t, got, len(NormalSlots))
			for _, slot := range NormalSlots {
				assert.Equal(t, tt.want[slot], got[slot], "slot %s", slot)
			}
		})
	}
}

func TestProject_BlanketMealWithOtherGenre(t *testing.T) {
	got := Project(GenreOther, NewTags("毎食後"), "2")

	assert.Equal(t, "2", got[SlotMorning])
	assert.Equal(t, "2", got[SlotNoon])
	assert.Equal(t, "2", got[SlotEvening])
	assert.Empty(t, got[SlotWaking])
	assert.Empty(t, got[SlotBedtime])
	assert.Empty(t, got[SlotAsDirected])
}

func TestProject_Idempotent(t *testing.T) {
	tags := NewTags("朝食後", "就寝前", "頭痛時")
	assert.Equal(t, Project(GenreHeadache, tags, "1"), Project(GenreHeadache, tags, "1"))
}

func TestEvaluate_FirstRuleWins(t *testing.T) {
	rules := []slotRule{
		{
			name:    "never",
			applies: func(projection, Slot) bool { return false },
			content: func(projection, Slot) string { return "never" },
		},
		{
			name:    "first",
			applies: func(projection, Slot) bool { return true },
			content: func(projection, Slot) string { return "first" },
		},
		{
			name:    "second",
			applies: func(projection, Slot) bool { return true },
			content: func(projection, Slot) string { return "second" },
		},
	}

	assert.Equal(t, "first", evaluate(rules, projection{}, SlotMorning))
	assert.Empty(t, evaluate(nil, projection{}, SlotMorning))
}
