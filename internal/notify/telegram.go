package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/studyplan/pkg/models"
)

// sender is the part of the Telegram API the notifier uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends the daily review digest to a Telegram chat
type TelegramNotifier struct {
	api    sender
	chatID int64
}

// NewTelegramNotifier authorizes against the Bot API with token
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	return &TelegramNotifier{api: botAPI, chatID: chatID}, nil
}

// SendReminders sends one message listing today's topics. Nothing is sent
// when there is nothing to review.
func (n *TelegramNotifier) SendReminders(ctx context.Context, topics []models.StudyTopic) error {
	if len(topics) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatReminder(topics))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

// FormatReminder renders the topics grouped by subject
func FormatReminder(topics []models.StudyTopic) string {
	bySubject := make(map[string][]string)
	for _, t := range topics {
		bySubject[t.SubjectName] = append(bySubject[t.SubjectName], t.Name)
	}

	subjects := make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	var text strings.Builder
	noun := "topics"
	if len(topics) == 1 {
		noun = "topic"
	}
	text.WriteString(fmt.Sprintf("🔔 %d %s to review today\n", len(topics), noun))
	for _, s := range subjects {
		text.WriteString(fmt.Sprintf("\n📚 %s\n", s))
		for _, name := range bySubject[s] {
			text.WriteString(fmt.Sprintf("  • %s\n", name))
		}
	}
	return text.String()
}
