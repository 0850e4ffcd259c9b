package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"marquee/internal/caption"
	"marquee/internal/logging"
)

// Sender is the subset of the Bot API used to post replies.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Deliver posts c to chatID as a reply to replyTo (0 for no reply). A caption
// with an image goes out as a photo; if that fails the same text is sent
// once as a message with link previews disabled.
func Deliver(ctx context.Context, sender Sender, chatID int64, replyTo int, c caption.Caption, logger *slog.Logger) error {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "delivery"))

	if c.HasImage() {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(c.ImageURL))
		photo.Caption = c.Text
		photo.ParseMode = caption.ParseMode
		photo.ReplyToMessageID = replyTo
		photo.AllowSendingWithoutReply = true
		_, err := sender.Send(photo)
		if err == nil {
			return nil
		}
		logging.WarnWithContext(logger, "photo reply failed; falling back to text", "photo_send_failed",
			logging.String("image_url", c.ImageURL),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "poster URL may be unreachable for Telegram"),
			logging.String(logging.FieldImpact, "announcement sent without poster"),
		)
	}
	return sendText(sender, chatID, replyTo, c.Text, logger)
}

func sendText(sender Sender, chatID int64, replyTo int, text string, logger *slog.Logger) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = caption.ParseMode
	msg.DisableWebPagePreview = true
	msg.ReplyToMessageID = replyTo
	msg.AllowSendingWithoutReply = true
	if _, err := sender.Send(msg); err != nil {
		logging.ErrorWithContext(logger, "text reply failed", "reply_send_failed",
			logging.Int64("chat_id", chatID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check bot permissions in the chat"),
		)
		return fmt.Errorf("send text reply: %w", err)
	}
	return nil
}
