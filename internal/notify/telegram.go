package notify

import (
	"bytes"

	tele "gopkg.in/telebot.v3"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

// TelegramChannel sends through a running telebot instance.
type TelegramChannel struct {
	bot    *tele.Bot
	logger internal.Logger
}

func NewTelegramChannel(bot *tele.Bot, logger internal.Logger) *TelegramChannel {
	return &TelegramChannel{bot: bot, logger: logger}
}

func (c *TelegramChannel) SendText(telegramID int64, text string) error {
	_, err := c.bot.Send(&tele.User{ID: telegramID}, text, tele.ModeMarkdown)
	return err
}

// SendImage falls back to plain text when the photo upload fails, so the user
// still gets the caption.
func (c *TelegramChannel) SendImage(telegramID int64, png []byte, caption string) error {
	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(png)),
		Caption: caption,
	}
	_, err := c.bot.Send(&tele.User{ID: telegramID}, photo)
	if err != nil {
		c.logger.Warnf("photo send to %d failed, falling back to text: %v", telegramID, err)
		return c.SendText(telegramID, caption)
	}
	return nil
}

func (c *TelegramChannel) SendDocument(telegramID int64, filename string, data []byte, caption string) error {
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: filename,
		Caption:  caption,
	}
	_, err := c.bot.Send(&tele.User{ID: telegramID}, doc)
	return err
}

var _ Channel = (*TelegramChannel)(nil)
