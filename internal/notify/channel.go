package notify

// Channel delivers outbound messages to a user on the chat surface. The
// scheduler and report senders depend on this instead of the bot framework so
// tests can swap in a recorder.
type Channel interface {
	SendText(telegramID int64, text string) error
	SendImage(telegramID int64, png []byte, caption string) error
	SendDocument(telegramID int64, filename string, data []byte, caption string) error
}
