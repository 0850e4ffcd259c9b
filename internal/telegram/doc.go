// Package telegram connects the request pipeline to the Telegram Bot API.
//
// Service long-polls for updates, keeps text messages from groups (and,
// optionally, private chats), and hands each one to a bounded worker pool
// that runs the pipeline and replies to the originating message. Deliver
// sends the caption as a photo when a poster is available and falls back to
// a plain text message once when the photo send fails.
package telegram
