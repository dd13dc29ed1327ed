// telegram package exposes the picture service to an operator through a
// telegram bot. It is the only place besides the purge command where the
// whole picture root can be purged.
package telegram

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"picam.api/v0/database"
	"picam.api/v0/pkg/picture"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// History returns the latest journal entries, newest first.
type History interface {
	Recent(ctx context.Context, limit int) ([]database.OperationEntry, error)
}

type BotCommand struct {
	Usage         string
	MethodHandler func(ctx context.Context, msg *tgbotapi.Message, arg string) tgbotapi.Chattable
}

type Bot struct {
	api      *tgbotapi.BotAPI
	svc      *picture.Service
	history  History
	chatID   int64
	commands map[string]BotCommand
	running  atomic.Bool
}

// history may be nil when the journal is disabled.
func newBot(api *tgbotapi.BotAPI, chatID int64, svc *picture.Service, history History) *Bot {
	b := &Bot{
		api:     api,
		svc:     svc,
		history: history,
		chatID:  chatID,
	}
	b.setupCommands()
	return b
}

// Sets up the command map with supported commands.
func (b *Bot) setupCommands() {
	b.commands = map[string]BotCommand{
		"help": {
			Usage:         "/help - Prints help menu",
			MethodHandler: b.handleHelp,
		},
		"snap": {
			Usage: "/snap <directory> - Takes a picture into directory",
			MethodHandler: func(ctx context.Context, msg *tgbotapi.Message, arg string) tgbotapi.Chattable {
				artifact, err := b.svc.Capture(ctx, picture.CaptureRequest{Directory: arg})
				if err != nil {
					return tgbotapi.NewMessage(msg.Chat.ID, picture.FailureText(err))
				}

				path := filepath.Join(b.svc.Settings().Root, artifact.Directory, artifact.Name)
				photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FilePath(path))
				photo.Caption = fmt.Sprintf("%s/%s", artifact.Directory, artifact.Name)
				return photo
			},
		},
		"sync": {
			Usage: "/sync <directory> - Copies directory to the cloud host",
			MethodHandler: func(ctx context.Context, msg *tgbotapi.Message, arg string) tgbotapi.Chattable {
				result, err := b.svc.Sync(ctx, arg)
				if err != nil {
					return tgbotapi.NewMessage(msg.Chat.ID, picture.FailureText(err))
				}
				if len(result.Files) == 0 {
					return tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Nothing to sync in '%s'.", arg))
				}
				reply := fmt.Sprintf("Synced %d files:\n%s", len(result.Files), strings.Join(result.Files, "\n"))
				return tgbotapi.NewMessage(msg.Chat.ID, reply)
			},
		},
		"delete": {
			Usage: "/delete <directory> - Deletes directory",
			MethodHandler: func(ctx context.Context, msg *tgbotapi.Message, arg string) tgbotapi.Chattable {
				if err := b.svc.Delete(ctx, arg); err != nil {
					return tgbotapi.NewMessage(msg.Chat.ID, picture.FailureText(err))
				}
				return tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Deleted '%s'.", arg))
			},
		},
		"history": {
			Usage:         "/history [count] - Lists the latest operations from the journal",
			MethodHandler: b.handleHistory,
		},
		"purge": {
			Usage: "/purge - Deletes every picture directory",
			MethodHandler: func(ctx context.Context, msg *tgbotapi.Message, arg string) tgbotapi.Chattable {
				if err := b.svc.PurgeAll(ctx); err != nil {
					return tgbotapi.NewMessage(msg.Chat.ID, picture.FailureText(err))
				}
				return tgbotapi.NewMessage(msg.Chat.ID, "Purged all pictures.")
			},
		},
	}
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message, arg string) tgbotapi.Chattable {
	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	helpMessage := "Bot Commands are prefixed with '/'. Supported Commands:"
	for _, name := range names {
		helpMessage += "\n" + b.commands[name].Usage
	}
	return tgbotapi.NewMessage(msg.Chat.ID, helpMessage)
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message, arg string) tgbotapi.Chattable {
	if b.history == nil {
		return tgbotapi.NewMessage(msg.Chat.ID, "Operation journal is disabled.")
	}

	limit, err := parseHistoryLimit(arg)
	if err != nil {
		return tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
	}

	entries, err := b.history.Recent(ctx, limit)
	if err != nil {
		log.Printf("Failed to read journal: %v\n", err)
		return tgbotapi.NewMessage(msg.Chat.ID, "Error: failed to read journal")
	}
	return tgbotapi.NewMessage(msg.Chat.ID, formatHistory(entries))
}

// parseHistoryLimit defaults an empty count and caps large ones.
func parseHistoryLimit(arg string) (int, error) {
	if arg == "" {
		return defaultHistoryLimit, nil
	}

	limit, err := strconv.Atoi(arg)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("count must be a positive number, got '%s'", arg)
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return limit, nil
}

func formatHistory(entries []database.OperationEntry) string {
	if len(entries) == 0 {
		return "No operations recorded yet."
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		line := fmt.Sprintf("%s %s", entry.StartedAt.Format("2006-01-02 15:04:05"), entry.Op)
		if entry.Directory != "" {
			line += fmt.Sprintf(" '%s'", entry.Directory)
		}
		if entry.Name != "" {
			line += " " + entry.Name
		}
		line += fmt.Sprintf(" %s (%dms)", entry.Outcome, entry.DurationMs)
		if entry.Message != "" {
			line += ": " + entry.Message
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// parseCommand splits "/name@bot arg" into its command name and argument.
func parseCommand(text string) (string, string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	name, arg, _ := strings.Cut(strings.TrimSpace(text[1:]), " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name), strings.TrimSpace(arg), name != ""
}

// handleCommand returns the reply to msg, or nil when msg should be ignored.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) tgbotapi.Chattable {
	if msg == nil || msg.Chat == nil {
		return nil
	}
	if b.chatID != 0 && msg.Chat.ID != b.chatID {
		log.Printf("[-] Ignoring message from unknown chat %d\n", msg.Chat.ID)
		return nil
	}

	name, arg, ok := parseCommand(msg.Text)
	if !ok {
		return nil
	}
	log.Printf("[+] Handling user command '%s'\n", name)

	// Obtain the respective bot command handler.
	botCmd, ok := b.commands[name]
	if !ok {
		return tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Unknown command '%s', try /help", name))
	}
	return botCmd.MethodHandler(ctx, msg, arg)
}

// Start listens for updates until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	// Ensure a single instance of the bot is running.
	if !b.running.CompareAndSwap(false, true) {
		log.Printf("Bot '%s' is already running\n", b.api.Self.UserName)
		return
	}
	defer b.running.Store(false)
	log.Printf("Starting Bot '%s'\n", b.api.Self.UserName)

	// Listen.
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Printf("Stopped Bot '%s'\n", b.api.Self.UserName)
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}

			reply := b.handleCommand(ctx, update.Message)
			if reply == nil {
				continue
			}
			if _, err := b.api.Send(reply); err != nil {
				log.Printf("Failed to send bot reply: %v\n", err)
			}
		}
	}
}
