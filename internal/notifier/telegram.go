package notifier

import (
	"fmt"

	"go.uber.org/zap"
	"questledger/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier surfaces "ledger committed, mint failed" partial successes to the
// operator so they can be reconciled by hand.
type Notifier interface {
	MintFailed(userAddress string, amount int64, cause error)
}

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) MintFailed(userAddress string, amount int64, cause error) {
	text := fmt.Sprintf(
		"Mint failed after ledger commit\nuser: %s\namount: %d\nerror: %v\nThe ledger state is already committed; re-mint manually.",
		userAddress, amount, cause,
	)

	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		logger.Logger().Error("failed to send mint failure alert",
			zap.String("user_address", userAddress),
			zap.Error(err))
	}
}

// Noop is used when operator alerting is not configured.
type Noop struct{}

func (Noop) MintFailed(userAddress string, amount int64, cause error) {
	logger.Logger().Warn("mint failed after ledger commit (alerting disabled)",
		zap.String("user_address", userAddress),
		zap.Int64("amount", amount),
		zap.Error(cause))
}
