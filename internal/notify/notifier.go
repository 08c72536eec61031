package notify

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier 后厨消息通知
type Notifier interface {
	Enabled() bool
	Send(ctx context.Context, text string) error
}

// New 按配置创建通知器，未启用时返回空实现
func New(cfg config.TelegramConfig) Notifier {
	if !cfg.Enabled {
		return noopNotifier{}
	}
	if strings.TrimSpace(cfg.BotToken) == "" || cfg.ChatID == 0 {
		logger.Warnw("telegram_notifier_misconfigured", "has_token", cfg.BotToken != "", "chat_id", cfg.ChatID)
		return noopNotifier{}
	}
	return &TelegramNotifier{token: strings.TrimSpace(cfg.BotToken), chatID: cfg.ChatID}
}

type noopNotifier struct{}

func (noopNotifier) Enabled() bool { return false }

func (noopNotifier) Send(_ context.Context, text string) error {
	logger.Debugw("kitchen_notify_skipped", "reason", "telegram_disabled", "length", len(text))
	return nil
}

// TelegramNotifier 通过 Telegram Bot 发送到员工群
type TelegramNotifier struct {
	token  string
	chatID int64

	once sync.Once
	bot  *tgbotapi.BotAPI
	err  error
}

// Enabled 是否启用
func (n *TelegramNotifier) Enabled() bool {
	return n != nil
}

// 首次发送时再连接 Bot API，避免启动阶段依赖外网
func (n *TelegramNotifier) client() (*tgbotapi.BotAPI, error) {
	n.once.Do(func() {
		n.bot, n.err = tgbotapi.NewBotAPI(n.token)
	})
	return n.bot, n.err
}

// Send 发送消息
func (n *TelegramNotifier) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("notify text is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	bot, err := n.client()
	if err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := bot.Send(msg); err != nil {
		return err
	}
	return nil
}
