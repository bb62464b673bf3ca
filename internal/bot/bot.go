// Package bot is the Telegram operator console for managing reservation
// settings across the chain's branches.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stolik/internal/db"
	"stolik/internal/service"
)

type telegramClient interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	SelfUser() tgbotapi.User
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) Request(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return c.api.Request(msg)
}

func (c *realTelegramClient) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.api.GetUpdatesChan(cfg)
}

func (c *realTelegramClient) SelfUser() tgbotapi.User {
	return c.api.Self
}

// Bot wires Telegram updates to the branch service.
type Bot struct {
	svc       *service.Service
	db        *db.DB
	exportDir string
	managers  map[int64]struct{}
	tg        telegramClient
	state     *stateStore
	logger    *zerolog.Logger
}

func New(token string, svc *service.Service, database *db.DB, exportDir string, managers []int64, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newBot(&realTelegramClient{api: api}, svc, database, exportDir, managers, logger)
}

// NewWithTelegramClient allows injecting a mocked Telegram client for tests.
func NewWithTelegramClient(tg telegramClient, svc *service.Service, database *db.DB, exportDir string, managers []int64, logger *zerolog.Logger) (*Bot, error) {
	return newBot(tg, svc, database, exportDir, managers, logger)
}

func newBot(tg telegramClient, svc *service.Service, database *db.DB, exportDir string, managers []int64, logger *zerolog.Logger) (*Bot, error) {
	if tg == nil {
		return nil, fmt.Errorf("telegram client is nil")
	}
	mgrs := make(map[int64]struct{})
	for _, id := range managers {
		mgrs[id] = struct{}{}
	}
	return &Bot{
		svc:       svc,
		db:        database,
		exportDir: exportDir,
		managers:  mgrs,
		tg:        tg,
		state:     newStateStore(),
		logger:    logger,
	}, nil
}

var mainMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("🏠 Branches"),
		tgbotapi.NewKeyboardButton("📊 Export"),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("ℹ️ Help"),
	),
)

// Start begins polling updates and handles commands.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	b.logger.Info().Str("username", b.tg.SelfUser().UserName).Msg("operator bot authorized")

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			requestID := uuid.New().String()
			l := b.logger.With().Str("request_id", requestID).Logger()
			updateCtx := l.WithContext(ctx)
			b.handleUpdate(updateCtx, &update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	l := zerolog.Ctx(ctx)
	if update.CallbackQuery != nil {
		l.Debug().
			Int64("user_id", update.CallbackQuery.From.ID).
			Str("data", update.CallbackQuery.Data).
			Msg("handling callback query")
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message != nil {
		l.Debug().
			Int64("user_id", update.Message.From.ID).
			Str("text", update.Message.Text).
			Msg("handling message")
		b.handleMessage(ctx, update.Message)
		return
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil {
		return
	}
	if !b.isManager(msg.From.ID) {
		b.reply(msg.Chat.ID, "You are not authorized to use this bot.")
		return
	}
	text := strings.TrimSpace(msg.Text)

	// Commands interrupt any active edit.
	switch {
	case strings.HasPrefix(text, "/start"):
		b.state.reset(msg.From.ID)
		welcome := tgbotapi.NewMessage(msg.Chat.ID, "Reservation console ready. Choose an action:")
		welcome.ReplyMarkup = mainMenu
		_, _ = b.tg.Send(welcome)
		return
	case text == "🏠 Branches" || strings.HasPrefix(text, "/branches"):
		b.openBranchList(ctx, msg.Chat.ID, msg.From.ID)
		return
	case text == "📊 Export" || strings.HasPrefix(text, "/export"):
		b.handleExport(ctx, msg.Chat.ID)
		return
	case text == "ℹ️ Help" || strings.HasPrefix(text, "/help"):
		b.reply(msg.Chat.ID, "Commands: /branches, /disable_all, /export, /cancel")
		return
	case strings.HasPrefix(text, "/disable_all"):
		b.openDisableAll(msg.Chat.ID, msg.From.ID)
		return
	case strings.HasPrefix(text, "/cancel"):
		b.state.reset(msg.From.ID)
		b.reply(msg.Chat.ID, "Operation cancelled.")
		return
	}

	st := b.state.get(msg.From.ID)
	switch st.Step {
	case stepDuration:
		b.handleDurationInput(msg.Chat.ID, st, text)
	case stepTime:
		b.handleTimeInput(msg.Chat.ID, st, text)
	}
}

func (b *Bot) handleDurationInput(chatID int64, st *operatorState, text string) {
	minutes, err := strconv.Atoi(text)
	if err != nil || minutes <= 0 {
		b.reply(chatID, "Enter the duration as a whole number of minutes, e.g. 90.")
		return
	}
	st.Values.ReservationDuration = minutes
	st.Step = stepMenu
	b.sendSettingsMenu(chatID, st, 0)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq == nil {
		return
	}
	data := cq.Data
	_ = b.answerCallback(cq.ID)
	if data == "noop" {
		return
	}
	if !b.isManager(cq.From.ID) {
		return
	}

	userID := cq.From.ID
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	st := b.state.get(userID)

	switch {
	case strings.HasPrefix(data, "pg:"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "pg:"))
		if err != nil {
			return
		}
		st.Page = page
		b.renderBranchList(chatID, messageID, st)
	case data == "list":
		b.renderBranchList(chatID, messageID, st)
	case strings.HasPrefix(data, "br:"):
		b.renderBranchCard(chatID, messageID, strings.TrimPrefix(data, "br:"))
	case strings.HasPrefix(data, "en:"):
		b.openToggle(chatID, userID, actionEnable, strings.TrimPrefix(data, "en:"))
	case strings.HasPrefix(data, "dis:"):
		b.openToggle(chatID, userID, actionDisable, strings.TrimPrefix(data, "dis:"))
	case data == "disall":
		b.openDisableAll(chatID, userID)
	case strings.HasPrefix(data, "cfm:"):
		b.handleConfirmCallback(ctx, chatID, userID, strings.TrimPrefix(data, "cfm:"))
	case strings.HasPrefix(data, "cfg:"):
		b.openSettings(ctx, chatID, userID, strings.TrimPrefix(data, "cfg:"))
	case strings.HasPrefix(data, "set:"):
		b.handleSettingsCallback(ctx, chatID, messageID, userID, st, strings.TrimPrefix(data, "set:"))
	case strings.HasPrefix(data, "tbl:"):
		b.toggleTable(chatID, messageID, st, strings.TrimPrefix(data, "tbl:"))
	case strings.HasPrefix(data, "day:"):
		b.handleDayCallback(chatID, messageID, st, strings.TrimPrefix(data, "day:"))
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = b.tg.Send(msg)
}

func (b *Bot) isManager(id int64) bool {
	_, ok := b.managers[id]
	return ok
}

func (b *Bot) answerCallback(id string) error {
	_, err := b.tg.Request(tgbotapi.NewCallback(id, ""))
	return err
}
