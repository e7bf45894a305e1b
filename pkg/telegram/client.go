package telegram

import (
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrDailyPostLimit indicates the daily outbound message quota is exhausted.
var ErrDailyPostLimit = errors.New("daily post limit reached")

// Notifier defines the interface for a Telegram notifier.
type Notifier interface {
	SendMessage(text string) error
}

// client is an implementation of Notifier with a daily post quota.
// The quota counter resets at local-day rollover.
type client struct {
	bot           *tgbotapi.BotAPI
	chatID        int64
	maxDailyPosts int

	mu        sync.Mutex
	postCount int
	lastReset time.Time
	now       func() time.Time
}

// NewClient creates a new Telegram notifier client. maxDailyPosts <= 0
// disables the quota.
func NewClient(botToken string, chatID int64, maxDailyPosts int) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &client{
		bot:           bot,
		chatID:        chatID,
		maxDailyPosts: maxDailyPosts,
		lastReset:     time.Now(),
		now:           time.Now,
	}, nil
}

// SendMessage sends a message to the configured Telegram chat, subject to the
// daily post quota.
func (c *client) SendMessage(text string) error {
	if err := c.consumeQuota(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.bot.Send(msg)
	return err
}

func (c *client) consumeQuota() error {
	if c.maxDailyPosts <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !sameDay(now, c.lastReset) {
		c.postCount = 0
		c.lastReset = now
	}

	if c.postCount >= c.maxDailyPosts {
		return ErrDailyPostLimit
	}

	c.postCount++
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
