package achievements

// Type identifies an achievement. The value is what gets persisted, so these
// strings must stay stable across releases.
type Type string

const (
	TypeFirstEntry  Type = "first_entry"
	TypeTotal10     Type = "total_10"
	TypeTotal50     Type = "total_50"
	TypeStreak3     Type = "streak_3"
	TypeStreak7     Type = "streak_7"
	TypeStreak30    Type = "streak_30"
	TypeMoodMaster  Type = "mood_master"
	TypeSleepKing   Type = "sleep_king"
	TypeEnergyBoost Type = "energy_boost"
	TypeCalmMind    Type = "calm_mind"
)

// Achievement is a catalog entry. Name and Description are user-facing.
type Achievement struct {
	Type        Type
	Name        string
	Description string
	Emoji       string
}

// Evaluation windows. Totals and streaks look at the last year of entries;
// the mean-based achievements use a recent window with a minimum sample so a
// single lucky day cannot unlock them.
const (
	historyWindowDays = 365
	rateWindowDays    = 30
	minRateEntries    = 7
)

// Catalog lists every achievement in award order. Evaluation walks this slice
// so that a single commit unlocking several types announces them in a fixed,
// predictable sequence.
var Catalog = []Achievement{
	{TypeFirstEntry, "First step", "Record your first entry", "🌱"},
	{TypeTotal10, "Regular", "Record 10 entries", "📝"},
	{TypeTotal50, "Chronicler", "Record 50 entries", "📚"},
	{TypeStreak3, "Warming up", "Keep a 3-day streak", "🔥"},
	{TypeStreak7, "Full week", "Keep a 7-day streak", "⚡"},
	{TypeStreak30, "Iron habit", "Keep a 30-day streak", "💎"},
	{TypeMoodMaster, "Mood master", "Average mood 8+ over the last month", "😊"},
	{TypeSleepKing, "Sleep king", "Average sleep of 7-9 hours over the last month", "😴"},
	{TypeEnergyBoost, "Energizer", "Average energy 8+ over the last month", "⚡"},
	{TypeCalmMind, "Calm mind", "Average anxiety 4 or below over the last month", "🧘"},
}

// ByType returns the catalog entry for a persisted type string, if known.
func ByType(t Type) (Achievement, bool) {
	for _, a := range Catalog {
		if a.Type == t {
			return a, true
		}
	}
	return Achievement{}, false
}
