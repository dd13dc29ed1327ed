package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"picam.api/v0/pkg/picture"
)

// NewBot authorizes against the telegram api with token. Commands are only
// accepted from chatID, unless it is 0. history may be nil.
func NewBot(token string, chatID int64, svc *picture.Service, history History) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token cannot be empty")
	}

	// Create a telegram bot api instance.
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create a new bot api: %v", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)

	return newBot(api, chatID, svc, history), nil
}
