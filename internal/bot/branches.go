package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const branchesPerPage = 8

func (b *Bot) openBranchList(ctx context.Context, chatID, userID int64) {
	if err := b.svc.FetchBranches(ctx); err != nil {
		b.reply(chatID, b.svc.LastError())
		return
	}
	st := b.state.get(userID)
	st.Page = 0
	b.renderBranchList(chatID, 0, st)
}

// renderBranchList draws one page of the branch overview: enabled
// branches with their reservable table counts first, then the rest.
func (b *Bot) renderBranchList(chatID int64, messageID int, st *operatorState) {
	enabled := b.svc.Store().Enabled()
	disabled := b.svc.Store().Disabled()

	type row struct {
		id, label string
	}
	var rows []row
	for _, br := range enabled {
		noun := "tables"
		if br.ReservableTables == 1 {
			noun = "table"
		}
		rows = append(rows, row{br.ID, fmt.Sprintf("✅ %s (%d %s)", displayName(br.Name, br.Reference), br.ReservableTables, noun)})
	}
	for _, br := range disabled {
		rows = append(rows, row{br.ID, fmt.Sprintf("🚫 %s", displayName(br.Name, br.Reference))})
	}

	totalPages := (len(rows) + branchesPerPage - 1) / branchesPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if st.Page >= totalPages {
		st.Page = totalPages - 1
	}
	startIdx := st.Page * branchesPerPage
	endIdx := startIdx + branchesPerPage
	if endIdx > len(rows) {
		endIdx = len(rows)
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("🏠 *Branches* — %d accepting reservations, %d not\n\n", len(enabled), len(disabled)))
	message.WriteString(fmt.Sprintf("Page %d of %d\n", st.Page+1, totalPages))

	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, r := range rows[startIdx:endIdx] {
		btn := tgbotapi.NewInlineKeyboardButtonData(r.label, "br:"+r.id)
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{btn})
	}

	var navButtons []tgbotapi.InlineKeyboardButton
	if st.Page > 0 {
		navButtons = append(navButtons, tgbotapi.NewInlineKeyboardButtonData("⬅️ Prev", fmt.Sprintf("pg:%d", st.Page-1)))
	}
	if endIdx < len(rows) {
		navButtons = append(navButtons, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", fmt.Sprintf("pg:%d", st.Page+1)))
	}
	if len(navButtons) > 0 {
		keyboard = append(keyboard, navButtons)
	}
	if len(enabled) > 0 {
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🚫 Disable all reservations", "disall"),
		})
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(keyboard...)
	if messageID != 0 {
		editMsg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, message.String(), markup)
		editMsg.ParseMode = "Markdown"
		_, _ = b.tg.Send(editMsg)
	} else {
		msg := tgbotapi.NewMessage(chatID, message.String())
		msg.ReplyMarkup = markup
		msg.ParseMode = "Markdown"
		_, _ = b.tg.Send(msg)
	}
}

func (b *Bot) renderBranchCard(chatID int64, messageID int, branchID string) {
	branch, ok := b.svc.Store().Get(branchID)
	if !ok {
		b.reply(chatID, "Branch not found. Try /branches to refresh the list.")
		return
	}

	status := "🚫 not accepting reservations"
	if branch.AcceptsReservations {
		status = "✅ accepting reservations"
	}
	var message strings.Builder
	message.WriteString(fmt.Sprintf("*%s*\n", displayName(branch.Name, branch.Reference)))
	message.WriteString(status + "\n")
	message.WriteString(fmt.Sprintf("Reservable tables: %d\n", branch.ReservableTableCount()))
	if branch.ReservationDuration > 0 {
		message.WriteString(fmt.Sprintf("Reservation duration: %d min\n", branch.ReservationDuration))
	}

	var toggle tgbotapi.InlineKeyboardButton
	if branch.AcceptsReservations {
		toggle = tgbotapi.NewInlineKeyboardButtonData("🚫 Disable reservations", "dis:"+branchID)
	} else {
		toggle = tgbotapi.NewInlineKeyboardButtonData("✅ Enable reservations", "en:"+branchID)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(toggle),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", "cfg:"+branchID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "list"),
		),
	)

	if messageID != 0 {
		editMsg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, message.String(), markup)
		editMsg.ParseMode = "Markdown"
		_, _ = b.tg.Send(editMsg)
	} else {
		msg := tgbotapi.NewMessage(chatID, message.String())
		msg.ReplyMarkup = markup
		msg.ParseMode = "Markdown"
		_, _ = b.tg.Send(msg)
	}
}

func displayName(name, reference string) string {
	if reference != "" {
		return fmt.Sprintf("%s (%s)", name, reference)
	}
	return name
}
