package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// Main menu button labels. The text handler matches on these, so they live in
// one place.
const (
	btnRecordEntry  = "📝 Record entry"
	btnStatistics   = "📊 Statistics"
	btnCharts       = "📈 Charts"
	btnAchievements = "🏆 Achievements"
	btnInsights     = "💡 Insights"
	btnExport       = "📄 Export"
	btnReminder     = "⏰ Reminder"
	btnHelp         = "❓ Help"
)

// Suggested tags offered on the tag screen. Free-text tags are accepted too.
var suggestedTags = []string{
	"work", "study", "sport", "rest", "social", "family",
	"stress", "joy", "illness", "travel", "coffee", "food",
}

func mainMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnRecordEntry), menu.Text(btnStatistics)),
		menu.Row(menu.Text(btnCharts), menu.Text(btnAchievements)),
		menu.Row(menu.Text(btnInsights), menu.Text(btnExport)),
		menu.Row(menu.Text(btnReminder), menu.Text(btnHelp)),
	)
	return menu
}

// ratingKeyboard shows two rows of 1..10 plus navigation.
func (b *Bot) ratingKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	var top, bottom []tele.Btn
	for i := 1; i <= 5; i++ {
		top = append(top, kb.Data(fmt.Sprintf("%d", i), "rate", fmt.Sprintf("%d", i)))
	}
	for i := 6; i <= 10; i++ {
		bottom = append(bottom, kb.Data(fmt.Sprintf("%d", i), "rate", fmt.Sprintf("%d", i)))
	}
	kb.Inline(
		kb.Row(top...),
		kb.Row(bottom...),
		kb.Row(kb.Data("⬅️ Back", "back"), kb.Data("❌ Cancel", "cancel")),
	)
	return kb
}

func (b *Bot) sleepKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	choices := []string{"4", "5", "6", "6.5", "7", "7.5", "8", "8.5", "9", "10"}
	var top, bottom []tele.Btn
	for i, c := range choices {
		btn := kb.Data(c+" h", "sleep", c)
		if i < 5 {
			top = append(top, btn)
		} else {
			bottom = append(bottom, btn)
		}
	}
	kb.Inline(
		kb.Row(top...),
		kb.Row(bottom...),
		kb.Row(kb.Data("⬅️ Back", "back"), kb.Data("❌ Cancel", "cancel")),
	)
	return kb
}

func (b *Bot) tagsKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	var rows []tele.Row
	for i := 0; i < len(suggestedTags); i += 4 {
		end := i + 4
		if end > len(suggestedTags) {
			end = len(suggestedTags)
		}
		var row []tele.Btn
		for _, tag := range suggestedTags[i:end] {
			row = append(row, kb.Data(tag, "tag", tag))
		}
		rows = append(rows, kb.Row(row...))
	}
	rows = append(rows,
		kb.Row(kb.Data("✅ Done", "tags_done")),
		kb.Row(kb.Data("⬅️ Back", "back"), kb.Data("❌ Cancel", "cancel")),
	)
	kb.Inline(rows...)
	return kb
}

func (b *Bot) noteKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	kb.Inline(
		kb.Row(kb.Data("⏭ Skip", "note_skip")),
		kb.Row(kb.Data("⬅️ Back", "back"), kb.Data("❌ Cancel", "cancel")),
	)
	return kb
}

func (b *Bot) overwriteKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	kb.Inline(kb.Row(
		kb.Data("✅ Overwrite", "ow_yes"),
		kb.Data("❌ Keep it", "ow_no"),
	))
	return kb
}

func (b *Bot) chartsKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	kb.Inline(kb.Row(
		kb.Data("Week", "chart", "week"),
		kb.Data("Month", "chart", "month"),
		kb.Data("Year", "chart", "year"),
	))
	return kb
}

func (b *Bot) exportKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	kb.Inline(kb.Row(
		kb.Data("📑 PDF", "export", "pdf"),
		kb.Data("📊 Excel", "export", "xlsx"),
	))
	return kb
}

func (b *Bot) reminderKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	kb.Inline(
		kb.Row(
			kb.Data("09:00", "rem_set", "09:00"),
			kb.Data("12:00", "rem_set", "12:00"),
			kb.Data("21:00", "rem_set", "21:00"),
		),
		kb.Row(kb.Data("🕐 Custom time", "rem_custom")),
		kb.Row(kb.Data("📌 Set note", "rem_note")),
		kb.Row(kb.Data("🔕 Disable", "rem_off")),
	)
	return kb
}

func (b *Bot) deleteConfirmKeyboard() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{}
	kb.Inline(kb.Row(
		kb.Data("🗑 Yes, delete everything", "del_yes"),
		kb.Data("↩️ No, keep my data", "del_no"),
	))
	return kb
}
