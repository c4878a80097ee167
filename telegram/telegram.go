package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mooncalendar/calendar"
	"mooncalendar/logger"
	"mooncalendar/render"
)

// Sender is the part of *tgbotapi.BotAPI used for publishing.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Publisher sends moon phase reports to a single chat.
type Publisher struct {
	sender Sender
	chatID int64
}

// NewPublisher authorizes the bot token and returns a Publisher for chatID.
func NewPublisher(token string, chatID int64) (*Publisher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: authorize bot: %w", err)
	}
	logger.Log.Infof("Authorized on account %s", bot.Self.UserName)
	return NewPublisherWithSender(bot, chatID), nil
}

// NewPublisherWithSender returns a Publisher that sends through s.
func NewPublisherWithSender(s Sender, chatID int64) *Publisher {
	return &Publisher{sender: s, chatID: chatID}
}

// pre() returns a MarkdownV2 preformatted block
func pre(s string) string {
	return "```\n" + tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s) + "\n```"
}

// Publish sends the text table and then the chart. The table is sent even
// when the chart cannot be rendered.
func (p *Publisher) Publish(r calendar.Report) error {
	msg := tgbotapi.NewMessage(p.chatID, pre(render.Table(r)))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := p.sender.Send(msg); err != nil {
		return fmt.Errorf("telegram: send table: %w", err)
	}

	chart, err := render.ChartPNG(r)
	if err != nil {
		return fmt.Errorf("telegram: render chart: %w", err)
	}
	photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("moon-%04d-%02d.png", r.Year, int(r.Month)),
		Bytes: chart,
	})
	photo.Caption = "Moon Phases for " + r.Title()
	if _, err := p.sender.Send(photo); err != nil {
		return fmt.Errorf("telegram: send chart: %w", err)
	}

	logger.Log.WithField("month", r.Title()).Info("Report sent to Telegram")
	return nil
}
