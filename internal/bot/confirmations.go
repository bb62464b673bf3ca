package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"stolik/internal/confirm"
)

const (
	actionEnable     confirm.Action = "enable-reservations"
	actionDisable    confirm.Action = "disable-reservations"
	actionDisableAll confirm.Action = "disable-all-reservations"
)

type branchRef struct {
	ID   string
	Name string
}

// ensureConfirms lazily builds the operator's confirmation controller.
// Handlers capture the operator id so audit records name the actor.
func (b *Bot) ensureConfirms(st *operatorState, userID int64) {
	if st.Confirms != nil {
		return
	}
	c := confirm.NewController(b.logger)

	c.Register(actionEnable, confirm.Config{
		Title: "Enable Reservations",
		MessageFunc: func(data any) string {
			ref := data.(branchRef)
			return fmt.Sprintf("Are you sure you want to enable reservations for %s?", ref.Name)
		},
		ConfirmText: "Enable",
		CancelText:  "Cancel",
		Variant:     confirm.VariantSuccess,
		OnConfirm: func(ctx context.Context, data any) error {
			ref := data.(branchRef)
			return b.svc.EnableReservations(ctx, userID, []string{ref.ID})
		},
		SuccessMessage: "Reservations enabled successfully.",
		ErrorMessage:   "Failed to enable reservations.",
	})

	c.Register(actionDisable, confirm.Config{
		Title: "Disable Reservations",
		MessageFunc: func(data any) string {
			ref := data.(branchRef)
			return fmt.Sprintf("Are you sure you want to disable reservations for %s?", ref.Name)
		},
		ConfirmText: "Disable",
		CancelText:  "Cancel",
		Variant:     confirm.VariantDanger,
		OnConfirm: func(ctx context.Context, data any) error {
			ref := data.(branchRef)
			return b.svc.DisableBranch(ctx, userID, ref.ID)
		},
		SuccessMessage: "Reservations disabled successfully.",
		ErrorMessage:   "Failed to disable reservations.",
	})

	c.Register(actionDisableAll, confirm.Config{
		Title:       "Disable All Reservations",
		Message:     "Are you sure you want to disable reservations for all branches?",
		ConfirmText: "Disable All",
		CancelText:  "Cancel",
		Variant:     confirm.VariantDanger,
		OnConfirm: func(ctx context.Context, _ any) error {
			return b.svc.DisableAllReservations(ctx, userID)
		},
		SuccessMessage: "Reservations disabled for all branches.",
		ErrorMessage:   "Failed to disable reservations.",
	})

	st.Confirms = c
}

func (b *Bot) openToggle(chatID, userID int64, action confirm.Action, branchID string) {
	branch, ok := b.svc.Store().Get(branchID)
	if !ok {
		b.reply(chatID, "Branch not found. Try /branches to refresh the list.")
		return
	}
	st := b.state.get(userID)
	b.ensureConfirms(st, userID)
	st.Confirms.Open(action, branchRef{ID: branch.ID, Name: branch.Name})
	b.renderConfirm(chatID, st)
}

func (b *Bot) openDisableAll(chatID, userID int64) {
	if len(b.svc.Store().Enabled()) == 0 {
		b.reply(chatID, "No branches currently accept reservations.")
		return
	}
	st := b.state.get(userID)
	b.ensureConfirms(st, userID)
	st.Confirms.Open(actionDisableAll, nil)
	b.renderConfirm(chatID, st)
}

// renderConfirm draws the dialog snapshot: question with confirm/cancel
// buttons, or a result screen with a single OK button.
func (b *Bot) renderConfirm(chatID int64, st *operatorState) {
	state := st.Confirms.State()
	if !state.Show {
		return
	}

	text := fmt.Sprintf("%s %s\n\n%s", variantIcon(state.Variant), state.Title, state.Message)
	var markup tgbotapi.InlineKeyboardMarkup
	if state.Mode == confirm.ModeResult {
		markup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("OK", "cfm:ok"),
			),
		)
	} else {
		markup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(state.ConfirmText, "cfm:yes"),
				tgbotapi.NewInlineKeyboardButtonData(state.CancelText, "cfm:no"),
			),
		)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	_, _ = b.tg.Send(msg)
}

func (b *Bot) handleConfirmCallback(ctx context.Context, chatID, userID int64, verb string) {
	st := b.state.get(userID)
	if st.Confirms == nil {
		return
	}
	switch verb {
	case "yes", "ok":
		_ = st.Confirms.Confirm(ctx)
		if st.Confirms.State().Show {
			b.renderConfirm(chatID, st)
			return
		}
		b.renderBranchList(chatID, 0, st)
	case "no":
		st.Confirms.Cancel()
		b.renderBranchList(chatID, 0, st)
	}
}

func variantIcon(v confirm.Variant) string {
	switch v {
	case confirm.VariantDanger:
		return "⚠️"
	case confirm.VariantWarning:
		return "⚠️"
	case confirm.VariantSuccess:
		return "✅"
	default:
		return "ℹ️"
	}
}
