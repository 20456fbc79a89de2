package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/achievements"
	"github.com/itgubeeva-pixel/carecloud/internal/analytics"
	"github.com/itgubeeva-pixel/carecloud/internal/dialog"
	"github.com/itgubeeva-pixel/carecloud/internal/notify"
	"github.com/itgubeeva-pixel/carecloud/internal/reminder"
	"github.com/itgubeeva-pixel/carecloud/internal/report"
	"github.com/itgubeeva-pixel/carecloud/internal/service"
)

// pendingInput marks what the next free-text message from a user means when
// it is not part of the entry dialog.
type pendingInput int

const (
	pendingNone pendingInput = iota
	pendingReminderTime
	pendingReminderNote
)

// Bot wires the telegram transport to the journal service. Handler state is
// limited to the dialog sessions and the pending-input map; everything
// durable lives behind the service.
type Bot struct {
	tb        *tele.Bot
	svc       *service.Service
	sessions  *dialog.Sessions
	scheduler *reminder.Scheduler
	channel   notify.Channel
	logger    internal.Logger

	mu      sync.Mutex
	pending map[int64]pendingInput
}

func New(tb *tele.Bot, svc *service.Service, scheduler *reminder.Scheduler, channel notify.Channel, logger internal.Logger) *Bot {
	b := &Bot{
		tb:        tb,
		svc:       svc,
		sessions:  dialog.NewSessions(),
		scheduler: scheduler,
		channel:   channel,
		logger:    logger,
		pending:   make(map[int64]pendingInput),
	}
	b.register()
	return b
}

// Start begins long polling. Blocks until Stop.
func (b *Bot) Start() { b.tb.Start() }

func (b *Bot) Stop() { b.tb.Stop() }

func (b *Bot) register() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/help", b.handleHelp)
	b.tb.Handle("/delete_my_data", b.handleDeleteRequest)
	b.tb.Handle(tele.OnText, b.handleText)

	callbacks := map[string]tele.HandlerFunc{
		"rate":       b.handleRating,
		"sleep":      b.handleSleep,
		"tag":        b.handleTag,
		"tags_done":  b.handleTagsDone,
		"note_skip":  b.handleNoteSkip,
		"back":       b.handleBack,
		"cancel":     b.handleCancel,
		"ow_yes":     b.handleOverwriteYes,
		"ow_no":      b.handleOverwriteNo,
		"chart":      b.handleChart,
		"export":     b.handleExport,
		"rem_set":    b.handleReminderSet,
		"rem_custom": b.handleReminderCustom,
		"rem_note":   b.handleReminderNotePrompt,
		"rem_off":    b.handleReminderOff,
		"del_yes":    b.handleDeleteConfirm,
		"del_no":     b.handleDeleteAbort,
	}
	for unique, h := range callbacks {
		btn := tele.Btn{Unique: unique}
		b.tb.Handle(&btn, h)
	}
}

func (b *Bot) handleStart(c tele.Context) error {
	sender := c.Sender()
	if _, err := b.svc.RegisterUser(context.Background(), sender.ID, sender.Username); err != nil {
		b.logger.Errorf("register user %d: %v", sender.ID, err)
		return c.Send("Something went wrong, please try again later.")
	}
	return c.Send(
		"👋 Hi! I am your well-being journal.\n\n"+
			"Once a day I ask about your mood, energy, anxiety and sleep. "+
			"In return you get streaks, achievements, charts and personal insights.\n\n"+
			"Tap *Record entry* to log your first day!",
		mainMenu(), tele.ModeMarkdown)
}

func (b *Bot) handleHelp(c tele.Context) error {
	return c.Send(
		"❓ *What I can do*\n\n"+
			"📝 Record entry: log mood, energy, anxiety, sleep, tags and a note\n"+
			"📊 Statistics: totals, averages and your current streak\n"+
			"📈 Charts: week, month or year as pictures\n"+
			"🏆 Achievements: unlock all 10\n"+
			"💡 Insights: a personal analysis of your data\n"+
			"📄 Export: PDF report or Excel spreadsheet\n"+
			"⏰ Reminder: a daily nudge at your chosen time\n\n"+
			"One entry per day; recording again overwrites after confirmation.\n"+
			"/delete\\_my\\_data removes everything I know about you.",
		tele.ModeMarkdown)
}

// handleText routes free text: menu buttons first, then pending reminder
// input, then the dialog (custom tags and notes), and finally a gentle hint.
func (b *Bot) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	senderID := c.Sender().ID

	switch text {
	case btnRecordEntry:
		return b.beginEntry(c)
	case btnStatistics:
		return b.sendStatistics(c)
	case btnCharts:
		return c.Send("📈 Pick a period:", b.chartsKeyboard())
	case btnAchievements:
		return b.sendAchievements(c)
	case btnInsights:
		return b.sendInsights(c)
	case btnExport:
		return c.Send("📄 Pick a format:", b.exportKeyboard())
	case btnReminder:
		return b.sendReminderMenu(c)
	case btnHelp:
		return b.handleHelp(c)
	}

	if p := b.takePending(senderID); p != pendingNone {
		return b.handlePendingInput(c, p, text)
	}

	if state, ok := b.sessions.State(senderID); ok {
		switch state {
		case dialog.StateTags:
			effect, acc := b.sessions.Apply(senderID, dialog.Event{Kind: dialog.EventTag, Text: text})
			return b.act(c, effect, acc)
		case dialog.StateNote:
			effect, acc := b.sessions.Apply(senderID, dialog.Event{Kind: dialog.EventText, Text: text})
			return b.act(c, effect, acc)
		default:
			return c.Send("Please use the buttons above to answer. ☝️")
		}
	}

	return c.Send("I did not get that. Use the menu below or /help.", mainMenu())
}

func (b *Bot) beginEntry(c tele.Context) error {
	senderID := c.Sender().ID
	has, err := b.svc.HasEntryToday(context.Background(), senderID)
	if err != nil {
		b.logger.Errorf("check today's entry for %d: %v", senderID, err)
		return c.Send("Something went wrong, please try again later.")
	}
	effect := b.sessions.Begin(senderID, has)
	return b.act(c, effect, dialog.Accumulator{})
}

// Dialog callbacks.

func (b *Bot) handleRating(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	rating, err := strconv.Atoi(c.Data())
	if err != nil {
		return nil
	}
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventRating, Rating: rating})
	return b.act(c, effect, acc)
}

func (b *Bot) handleSleep(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	hours, err := strconv.ParseFloat(c.Data(), 64)
	if err != nil {
		return nil
	}
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventSleep, Sleep: hours})
	return b.act(c, effect, acc)
}

func (b *Bot) handleTag(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventTag, Text: c.Data()})
	return b.act(c, effect, acc)
}

func (b *Bot) handleTagsDone(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventTagsDone})
	return b.act(c, effect, acc)
}

func (b *Bot) handleNoteSkip(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventText, Text: ""})
	return b.act(c, effect, acc)
}

func (b *Bot) handleBack(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventBack})
	return b.act(c, effect, acc)
}

func (b *Bot) handleCancel(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventCancel})
	return b.act(c, effect, acc)
}

func (b *Bot) handleOverwriteYes(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventOverwriteAccept})
	return b.act(c, effect, acc)
}

func (b *Bot) handleOverwriteNo(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	effect, acc := b.sessions.Apply(c.Sender().ID, dialog.Event{Kind: dialog.EventOverwriteDecline})
	return b.act(c, effect, acc)
}

// act turns a dialog effect into the next message.
func (b *Bot) act(c tele.Context, effect dialog.Effect, acc dialog.Accumulator) error {
	switch effect {
	case dialog.EffectAskOverwrite:
		return c.Send("📅 You already recorded today. Overwrite that entry?", b.overwriteKeyboard())
	case dialog.EffectAskMood:
		return c.Send("😊 How is your mood today? (1 = awful, 10 = fantastic)", b.ratingKeyboard())
	case dialog.EffectAskEnergy:
		return c.Send("⚡ How much energy do you have? (1-10)", b.ratingKeyboard())
	case dialog.EffectAskAnxiety:
		return c.Send("😰 How anxious do you feel? (1 = calm, 10 = very anxious)", b.ratingKeyboard())
	case dialog.EffectAskSleep:
		return c.Send("😴 How many hours did you sleep last night?", b.sleepKeyboard())
	case dialog.EffectAskTags:
		return c.Send("🏷 What shaped your day? Pick tags or type your own:", b.tagsKeyboard())
	case dialog.EffectTagAdded:
		return c.Send(fmt.Sprintf("🏷 Tags so far: %s", strings.Join(acc.Tags, ", ")), b.tagsKeyboard())
	case dialog.EffectAskNote:
		return c.Send("📝 Anything to remember about today? Type a note or skip.", b.noteKeyboard())
	case dialog.EffectCommit:
		return b.commitEntry(c, acc)
	case dialog.EffectCancelled:
		return c.Send("Entry cancelled. Come back any time!", mainMenu())
	case dialog.EffectInvalid:
		return c.Send("Please use the buttons above to answer. ☝️")
	default:
		return nil
	}
}

func (b *Bot) commitEntry(c tele.Context, acc dialog.Accumulator) error {
	sender := c.Sender()
	res, err := b.svc.CommitEntry(context.Background(), service.CommitEntryRequest{
		TelegramID: sender.ID,
		Username:   sender.Username,
		Mood:       acc.Mood,
		Energy:     acc.Energy,
		Anxiety:    acc.Anxiety,
		SleepHours: acc.Sleep,
		Tags:       acc.Tags,
		Note:       acc.Note,
	})
	if err != nil {
		b.logger.Errorf("commit entry for %d: %v", sender.ID, err)
		return c.Send("Could not save your entry, please try again.", mainMenu())
	}

	e := res.Entry
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ *Entry saved for %s*\n\n", e.Date)
	fmt.Fprintf(&sb, "😊 Mood: %d/10\n⚡ Energy: %d/10\n😰 Anxiety: %d/10\n😴 Sleep: %.1f h\n", e.Mood, e.Energy, e.Anxiety, e.SleepHours)
	if len(e.Tags) > 0 {
		fmt.Fprintf(&sb, "🏷 Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	if e.Note != "" {
		fmt.Fprintf(&sb, "📝 Note: %s\n", e.Note)
	}
	if err := c.Send(sb.String(), mainMenu(), tele.ModeMarkdown); err != nil {
		return err
	}

	for _, a := range res.Awarded {
		msg := fmt.Sprintf("%s *Achievement unlocked: %s*\n%s", a.Emoji, a.Name, a.Description)
		if err := c.Send(msg, tele.ModeMarkdown); err != nil {
			b.logger.Warnf("announce achievement %s to %d: %v", a.Type, sender.ID, err)
		}
	}
	return nil
}

// Read-only menus.

func (b *Bot) sendStatistics(c tele.Context) error {
	stats, err := b.svc.Stats(context.Background(), c.Sender().ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Send("No data yet. Start with *Record entry*!", tele.ModeMarkdown)
		}
		b.logger.Errorf("stats for %d: %v", c.Sender().ID, err)
		return c.Send("Something went wrong, please try again later.")
	}
	if stats.TotalEntries == 0 {
		return c.Send("No data yet. Start with *Record entry*!", tele.ModeMarkdown)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *Your statistics*\n\n")
	fmt.Fprintf(&sb, "📝 Entries: %d\n", stats.TotalEntries)
	fmt.Fprintf(&sb, "🔥 Streak: %d day(s)\n\n", stats.Streak)
	fmt.Fprintf(&sb, "😊 Mood: %.1f/10\n", stats.Averages.Mood)
	fmt.Fprintf(&sb, "⚡ Energy: %.1f/10\n", stats.Averages.Energy)
	fmt.Fprintf(&sb, "😰 Anxiety: %.1f/10\n", stats.Averages.Anxiety)
	fmt.Fprintf(&sb, "😴 Sleep: %.1f h\n", stats.Averages.Sleep)
	return c.Send(sb.String(), tele.ModeMarkdown)
}

// sendInsights analyses the last month, a tighter window than the stats view.
func (b *Bot) sendInsights(c tele.Context) error {
	entries, err := b.svc.Entries(context.Background(), c.Sender().ID, 30)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Send("No data yet. Start with *Record entry*!", tele.ModeMarkdown)
		}
		b.logger.Errorf("insights for %d: %v", c.Sender().ID, err)
		return c.Send("Something went wrong, please try again later.")
	}
	return c.Send(analytics.Insights(entries), tele.ModeMarkdown)
}

func (b *Bot) sendAchievements(c tele.Context) error {
	unlocked, total, err := b.svc.Achievements(context.Background(), c.Sender().ID)
	if err != nil {
		b.logger.Errorf("achievements for %d: %v", c.Sender().ID, err)
		return c.Send("Something went wrong, please try again later.")
	}

	have := make(map[string]bool, len(unlocked))
	for _, a := range unlocked {
		have[string(a.Type)] = true
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏆 *Achievements: %d of %d*\n", len(unlocked), total)
	groups := []struct {
		title string
		types []achievements.Type
	}{
		{"📝 Journal", []achievements.Type{achievements.TypeFirstEntry, achievements.TypeTotal10, achievements.TypeTotal50}},
		{"🔥 Streaks", []achievements.Type{achievements.TypeStreak3, achievements.TypeStreak7, achievements.TypeStreak30}},
		{"📈 Habits", []achievements.Type{achievements.TypeMoodMaster, achievements.TypeSleepKing, achievements.TypeEnergyBoost, achievements.TypeCalmMind}},
	}
	for _, g := range groups {
		fmt.Fprintf(&sb, "\n*%s*\n", g.title)
		for _, typ := range g.types {
			a, ok := achievements.ByType(typ)
			if !ok {
				continue
			}
			mark := "🔒"
			if have[string(a.Type)] {
				mark = a.Emoji
			}
			fmt.Fprintf(&sb, "%s *%s*: %s\n", mark, a.Name, a.Description)
		}
	}
	return c.Send(sb.String(), tele.ModeMarkdown)
}

// Charts and exports.

// Exports cover the last quarter of history.
const exportLookbackDays = 90

var chartPeriods = map[string]struct {
	days  int
	title string
}{
	"week":  {7, "Last week"},
	"month": {30, "Last month"},
	"year":  {365, "Last year"},
}

func (b *Bot) handleChart(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	period, ok := chartPeriods[c.Data()]
	if !ok {
		return nil
	}
	senderID := c.Sender().ID

	entries, err := b.svc.Entries(context.Background(), senderID, period.days)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Send("No data yet. Start with *Record entry*!", tele.ModeMarkdown)
		}
		b.logger.Errorf("chart entries for %d: %v", senderID, err)
		return c.Send("Something went wrong, please try again later.")
	}

	metrics, err := report.MetricsChart(entries, period.title)
	if err != nil {
		if errors.Is(err, report.ErrNotEnoughData) {
			return c.Send("Need at least two entries in this period to draw a chart. 📈")
		}
		// Degrade to the same numbers as text.
		b.logger.Errorf("render metrics chart: %v", err)
		return b.sendStatistics(c)
	}
	if err := b.channel.SendImage(senderID, metrics, "😊 Mood, ⚡ energy and 😰 anxiety"); err != nil {
		b.logger.Errorf("send metrics chart to %d: %v", senderID, err)
	}

	sleep, err := report.SleepChart(entries, period.title+", sleep")
	if err != nil {
		b.logger.Errorf("render sleep chart: %v", err)
		return nil
	}
	if err := b.channel.SendImage(senderID, sleep, "😴 Sleep hours"); err != nil {
		b.logger.Errorf("send sleep chart to %d: %v", senderID, err)
	}
	return nil
}

func (b *Bot) handleExport(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	sender := c.Sender()

	entries, err := b.svc.Entries(context.Background(), sender.ID, exportLookbackDays)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Send("No data yet. Start with *Record entry*!", tele.ModeMarkdown)
		}
		b.logger.Errorf("export entries for %d: %v", sender.ID, err)
		return c.Send("Something went wrong, please try again later.")
	}
	if len(entries) == 0 {
		return c.Send("Nothing to export yet. 📭")
	}

	stamp := time.Now().Format("2006-01-02")
	switch c.Data() {
	case "pdf":
		data, err := report.PDF(entries, sender.Username)
		if err != nil {
			b.logger.Errorf("build pdf for %d: %v", sender.ID, err)
			return c.Send("Could not build the PDF, please try again.")
		}
		return b.channel.SendDocument(sender.ID, "journal-"+stamp+".pdf", data, "📑 Your journal report")
	case "xlsx":
		data, err := report.Excel(entries)
		if err != nil {
			b.logger.Errorf("build xlsx for %d: %v", sender.ID, err)
			return c.Send("Could not build the spreadsheet, please try again.")
		}
		return b.channel.SendDocument(sender.ID, "journal-"+stamp+".xlsx", data, "📊 Your journal export")
	}
	return nil
}

// Reminders.

func (b *Bot) sendReminderMenu(c tele.Context) error {
	cfg, err := b.svc.Reminder(context.Background(), c.Sender().ID)
	if err != nil {
		b.logger.Errorf("reminder config for %d: %v", c.Sender().ID, err)
		return c.Send("Something went wrong, please try again later.")
	}

	status := "🔕 Reminder is off."
	if cfg != nil && cfg.Enabled && cfg.Time != "" {
		status = fmt.Sprintf("⏰ Daily reminder at *%s*.", cfg.Time)
		if cfg.Note != "" {
			status += fmt.Sprintf("\n📌 Note: %s", cfg.Note)
		}
	}
	return c.Send(status+"\n\nPick a time or manage below:", b.reminderKeyboard(), tele.ModeMarkdown)
}

func (b *Bot) handleReminderSet(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	return b.setReminder(c, c.Data())
}

func (b *Bot) setReminder(c tele.Context, hhmm string) error {
	sender := c.Sender()
	user, err := b.svc.RegisterUser(context.Background(), sender.ID, sender.Username)
	if err != nil || user == nil {
		b.logger.Errorf("register user %d for reminder: %v", sender.ID, err)
		return c.Send("Something went wrong, please try again later.")
	}
	if err := b.scheduler.Set(context.Background(), user.ID, sender.ID, hhmm); err != nil {
		return c.Send("That does not look like a valid time. Use HH:MM, e.g. 21:30.")
	}
	return c.Send(fmt.Sprintf("⏰ Done! I will nudge you every day at *%s*.", hhmm), tele.ModeMarkdown)
}

func (b *Bot) handleReminderCustom(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	b.setPending(c.Sender().ID, pendingReminderTime)
	return c.Send("🕐 Send the time as HH:MM (24-hour), or 0 to disable the reminder.")
}

func (b *Bot) handleReminderNotePrompt(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	b.setPending(c.Sender().ID, pendingReminderNote)
	return c.Send("📌 Send the text I should attach to your daily reminder, or - to clear it.")
}

func (b *Bot) handleReminderOff(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	sender := c.Sender()
	user, err := b.svc.RegisterUser(context.Background(), sender.ID, sender.Username)
	if err != nil || user == nil {
		return c.Send("Something went wrong, please try again later.")
	}
	if err := b.scheduler.Stop(context.Background(), user.ID); err != nil {
		b.logger.Errorf("disable reminder for %d: %v", sender.ID, err)
		return c.Send("Something went wrong, please try again later.")
	}
	return c.Send("🔕 Reminder disabled.")
}

func (b *Bot) handlePendingInput(c tele.Context, p pendingInput, text string) error {
	switch p {
	case pendingReminderTime:
		if text == "0" {
			return b.handleReminderOffText(c)
		}
		return b.setReminder(c, text)
	case pendingReminderNote:
		sender := c.Sender()
		user, err := b.svc.RegisterUser(context.Background(), sender.ID, sender.Username)
		if err != nil || user == nil {
			return c.Send("Something went wrong, please try again later.")
		}
		// "-" clears the note.
		if text == "-" {
			text = ""
		}
		if err := b.scheduler.SetNote(context.Background(), user.ID, text); err != nil {
			b.logger.Errorf("set reminder note for %d: %v", sender.ID, err)
			return c.Send("Something went wrong, please try again later.")
		}
		if text == "" {
			return c.Send("📌 Note cleared.")
		}
		return c.Send("📌 Note saved. It will be part of every reminder.")
	}
	return nil
}

func (b *Bot) handleReminderOffText(c tele.Context) error {
	sender := c.Sender()
	user, err := b.svc.RegisterUser(context.Background(), sender.ID, sender.Username)
	if err != nil || user == nil {
		return c.Send("Something went wrong, please try again later.")
	}
	if err := b.scheduler.Stop(context.Background(), user.ID); err != nil {
		return c.Send("Something went wrong, please try again later.")
	}
	return c.Send("🔕 Reminder disabled.")
}

// Account deletion.

func (b *Bot) handleDeleteRequest(c tele.Context) error {
	return c.Send(
		"⚠️ This removes *all* your entries, tags, achievements and reminder settings. "+
			"There is no undo. Are you sure?",
		b.deleteConfirmKeyboard(), tele.ModeMarkdown)
}

func (b *Bot) handleDeleteConfirm(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	sender := c.Sender()

	if user, err := b.svc.RegisterUser(context.Background(), sender.ID, sender.Username); err == nil && user != nil {
		if err := b.scheduler.Stop(context.Background(), user.ID); err != nil {
			b.logger.Warnf("stop reminder before erase for %d: %v", sender.ID, err)
		}
	}
	b.sessions.End(sender.ID)

	if err := b.svc.EraseUser(context.Background(), sender.ID, sender.Username); err != nil {
		b.logger.Errorf("erase data for %d: %v", sender.ID, err)
		return c.Send("Could not delete your data, please try again later.")
	}
	return c.Send("🗑 All your data is gone. You can start fresh any time.", mainMenu())
}

func (b *Bot) handleDeleteAbort(c tele.Context) error {
	defer c.Respond(&tele.CallbackResponse{})
	return c.Send("↩️ Nothing was deleted.", mainMenu())
}

// Pending-input bookkeeping.

func (b *Bot) setPending(userID int64, p pendingInput) {
	b.mu.Lock()
	b.pending[userID] = p
	b.mu.Unlock()
}

func (b *Bot) takePending(userID int64) pendingInput {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pending[userID]
	if !ok {
		return pendingNone
	}
	delete(b.pending, userID)
	return p
}
