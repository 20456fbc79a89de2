package dialog

import "strings"

// State is a step in the entry collection dialog.
type State int

const (
	StateIdle State = iota
	StateOverwritePending
	StateMood
	StateEnergy
	StateAnxiety
	StateSleep
	StateTags
	StateNote
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOverwritePending:
		return "overwrite_pending"
	case StateMood:
		return "mood"
	case StateEnergy:
		return "energy"
	case StateAnxiety:
		return "anxiety"
	case StateSleep:
		return "sleep"
	case StateTags:
		return "tags"
	case StateNote:
		return "note"
	default:
		return "unknown"
	}
}

// EventKind enumerates every input the dialog understands. Raw updates from
// the transport are decoded into one of these before they reach Transition;
// anything that does not decode is never fed to the machine.
type EventKind int

const (
	EventRating EventKind = iota
	EventSleep
	EventTag
	EventTagsDone
	EventText
	EventBack
	EventOverwriteAccept
	EventOverwriteDecline
	EventCancel
)

type Event struct {
	Kind   EventKind
	Rating int
	Sleep  float64
	Text   string
}

// Effect tells the caller what to do after a transition: which prompt to show
// next, or that the entry is ready to commit.
type Effect int

const (
	EffectNone Effect = iota
	EffectAskOverwrite
	EffectAskMood
	EffectAskEnergy
	EffectAskAnxiety
	EffectAskSleep
	EffectAskTags
	EffectAskNote
	EffectTagAdded
	EffectCommit
	EffectCancelled
	EffectInvalid
)

// Rating and sleep bounds for collected values.
const (
	RatingMin = 1
	RatingMax = 10
	SleepMin  = 1.0
	SleepMax  = 12.0
)

// Accumulator collects the answers as the dialog progresses. Values answered
// so far survive back-navigation except tags, which are discarded when the
// user steps back out of the tag screen.
type Accumulator struct {
	Mood    int
	Energy  int
	Anxiety int
	Sleep   float64
	Tags    []string
	Note    string
}

func (a *Accumulator) addTag(raw string) bool {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return false
	}
	for _, t := range a.Tags {
		if t == tag {
			return false
		}
	}
	a.Tags = append(a.Tags, tag)
	return true
}

// Start enters the dialog. When an entry for today already exists the machine
// first asks for overwrite confirmation.
func Start(hasExisting bool) (State, Effect) {
	if hasExisting {
		return StateOverwritePending, EffectAskOverwrite
	}
	return StateMood, EffectAskMood
}

// Transition is the pure step function. It never touches storage or the
// transport: callers act on the returned effect.
func Transition(s State, acc Accumulator, ev Event) (State, Accumulator, Effect) {
	if ev.Kind == EventCancel {
		return StateIdle, Accumulator{}, EffectCancelled
	}

	switch s {
	case StateOverwritePending:
		switch ev.Kind {
		case EventOverwriteAccept:
			return StateMood, Accumulator{}, EffectAskMood
		case EventOverwriteDecline:
			return StateIdle, Accumulator{}, EffectCancelled
		}

	case StateMood:
		switch ev.Kind {
		case EventRating:
			if !validRating(ev.Rating) {
				return s, acc, EffectInvalid
			}
			acc.Mood = ev.Rating
			return StateEnergy, acc, EffectAskEnergy
		case EventBack:
			return StateIdle, Accumulator{}, EffectCancelled
		}

	case StateEnergy:
		switch ev.Kind {
		case EventRating:
			if !validRating(ev.Rating) {
				return s, acc, EffectInvalid
			}
			acc.Energy = ev.Rating
			return StateAnxiety, acc, EffectAskAnxiety
		case EventBack:
			return StateMood, acc, EffectAskMood
		}

	case StateAnxiety:
		switch ev.Kind {
		case EventRating:
			if !validRating(ev.Rating) {
				return s, acc, EffectInvalid
			}
			acc.Anxiety = ev.Rating
			return StateSleep, acc, EffectAskSleep
		case EventBack:
			return StateEnergy, acc, EffectAskEnergy
		}

	case StateSleep:
		switch ev.Kind {
		case EventSleep:
			if ev.Sleep < SleepMin || ev.Sleep > SleepMax {
				return s, acc, EffectInvalid
			}
			acc.Sleep = ev.Sleep
			return StateTags, acc, EffectAskTags
		case EventBack:
			return StateAnxiety, acc, EffectAskAnxiety
		}

	case StateTags:
		switch ev.Kind {
		case EventTag:
			if acc.addTag(ev.Text) {
				return s, acc, EffectTagAdded
			}
			return s, acc, EffectNone
		case EventTagsDone:
			return StateNote, acc, EffectAskNote
		case EventBack:
			acc.Tags = nil
			return StateSleep, acc, EffectAskSleep
		}

	case StateNote:
		switch ev.Kind {
		case EventText:
			note := strings.TrimSpace(ev.Text)
			// "-" is the skip shortcut.
			if note == "-" {
				note = ""
			}
			acc.Note = note
			return StateIdle, acc, EffectCommit
		case EventBack:
			return StateTags, acc, EffectAskTags
		}
	}

	return s, acc, EffectInvalid
}

func validRating(r int) bool { return r >= RatingMin && r <= RatingMax }
