package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"stolik/internal/form"
	"stolik/internal/model"
	"stolik/internal/schedule"
	"stolik/internal/timeinput"
)

// openSettings fetches a fresh copy of the branch and starts an edit
// session from it. The draft lives in operator state until saved.
func (b *Bot) openSettings(ctx context.Context, chatID, userID int64, branchID string) {
	branch, err := b.svc.FetchBranch(ctx, branchID)
	if err != nil {
		b.reply(chatID, b.svc.LastError())
		return
	}
	st := b.state.get(userID)
	st.Step = stepMenu
	st.BranchID = branch.ID
	st.BranchName = branch.Name
	st.Values = form.InitialValues(branch)
	st.Tables = form.TableOptions(branch)
	b.sendSettingsMenu(chatID, st, 0)
}

func (b *Bot) sendSettingsMenu(chatID int64, st *operatorState, messageID int) {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("⚙️ *Settings — %s*\n\n", st.BranchName))
	message.WriteString(fmt.Sprintf("Duration: %d min\n", st.Values.ReservationDuration))
	message.WriteString(fmt.Sprintf("Tables enabled: %d of %d\n", len(st.Values.EnabledTables), len(st.Tables)))

	var keyboard [][]tgbotapi.InlineKeyboardButton
	keyboard = append(keyboard,
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("⏱ Duration: %d min", st.Values.ReservationDuration), "set:dur"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🍽 Tables (%d/%d)", len(st.Values.EnabledTables), len(st.Tables)), "set:tables"),
		},
	)
	for _, day := range model.WeekDays {
		slots := schedule.SlotsForDay(&st.Values, day)
		label := fmt.Sprintf("%s — %d slot(s)", day.Title(), len(slots))
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, "day:open:"+string(day)),
		})
	}
	keyboard = append(keyboard,
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📋 Copy Saturday to all days", "set:copysat"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("💾 Save", "set:save"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "set:cancel"),
		},
	)

	b.sendOrEdit(chatID, messageID, message.String(), tgbotapi.NewInlineKeyboardMarkup(keyboard...))
}

func (b *Bot) handleSettingsCallback(ctx context.Context, chatID int64, messageID int, userID int64, st *operatorState, verb string) {
	if st.BranchID == "" {
		b.reply(chatID, "No branch is being edited. Open one via /branches.")
		return
	}
	switch verb {
	case "menu":
		st.Step = stepMenu
		b.sendSettingsMenu(chatID, st, messageID)
	case "dur":
		st.Step = stepDuration
		b.reply(chatID, "Enter the reservation duration in minutes:")
	case "tables":
		b.renderTableToggles(chatID, messageID, st)
	case "copysat":
		schedule.ApplySaturdaySchedule(&st.Values)
		b.sendSettingsMenu(chatID, st, messageID)
	case "save":
		if err := b.svc.UpdateBranchSettings(ctx, userID, st.BranchID, st.Values); err != nil {
			b.reply(chatID, b.svc.LastError())
			return
		}
		b.reply(chatID, "Settings saved.")
		b.clearEdit(st)
		b.renderBranchList(chatID, 0, st)
	case "cancel":
		b.clearEdit(st)
		b.renderBranchList(chatID, 0, st)
	}
}

func (b *Bot) clearEdit(st *operatorState) {
	st.Step = stepNone
	st.BranchID = ""
	st.BranchName = ""
	st.Values = model.FormValues{}
	st.Tables = nil
	st.Input = nil
}

func (b *Bot) renderTableToggles(chatID int64, messageID int, st *operatorState) {
	enabled := make(map[string]struct{}, len(st.Values.EnabledTables))
	for _, id := range st.Values.EnabledTables {
		enabled[id] = struct{}{}
	}

	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, opt := range st.Tables {
		mark := "⬜"
		if _, ok := enabled[opt.Value]; ok {
			mark = "✅"
		}
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %s", mark, opt.Label), "tbl:"+opt.Value),
		})
	}
	keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "set:menu"),
	})

	text := fmt.Sprintf("🍽 *Tables — %s*\n\nTap a table to toggle reservations for it.", st.BranchName)
	b.sendOrEdit(chatID, messageID, text, tgbotapi.NewInlineKeyboardMarkup(keyboard...))
}

func (b *Bot) toggleTable(chatID int64, messageID int, st *operatorState, tableID string) {
	if st.BranchID == "" {
		return
	}
	found := false
	for i, id := range st.Values.EnabledTables {
		if id == tableID {
			st.Values.EnabledTables = append(st.Values.EnabledTables[:i], st.Values.EnabledTables[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		st.Values.EnabledTables = append(st.Values.EnabledTables, tableID)
	}
	b.renderTableToggles(chatID, messageID, st)
}

func (b *Bot) handleDayCallback(chatID int64, messageID int, st *operatorState, rest string) {
	if st.BranchID == "" {
		b.reply(chatID, "No branch is being edited. Open one via /branches.")
		return
	}
	parts := strings.Split(rest, ":")
	if len(parts) < 2 {
		return
	}
	verb := parts[0]
	day, ok := model.ParseWeekDay(parts[1])
	if !ok {
		return
	}

	switch verb {
	case "open":
		b.renderDayEditor(chatID, messageID, st, day)
	case "add":
		if schedule.HasMaxSlots(&st.Values, day) {
			b.reply(chatID, fmt.Sprintf("%s cannot have more than %d time slots", day.Title(), schedule.MaxSlotsPerDay))
			return
		}
		schedule.AddTimeSlot(&st.Values, day)
		b.renderDayEditor(chatID, messageID, st, day)
	case "del":
		if len(parts) < 3 {
			return
		}
		index, err := strconv.Atoi(parts[2])
		if err != nil {
			return
		}
		schedule.RemoveTimeSlot(&st.Values, day, index)
		b.renderDayEditor(chatID, messageID, st, day)
	case "edit":
		if len(parts) < 4 {
			return
		}
		index, err := strconv.Atoi(parts[2])
		if err != nil {
			return
		}
		slots := schedule.SlotsForDay(&st.Values, day)
		if index < 0 || index >= len(slots) {
			return
		}
		field := schedule.FieldStartTime
		current := slots[index].StartTime
		noun := "start"
		if parts[3] == "end" {
			field = schedule.FieldEndTime
			current = slots[index].EndTime
			noun = "end"
		}
		st.Step = stepTime
		st.Day = day
		st.SlotIndex = index
		st.Field = field
		st.Input = timeinput.New("", "")
		st.Input.Init(current)
		b.reply(chatID, fmt.Sprintf("Send the new %s time for %s slot %d (currently %s), e.g. 09:30:", noun, day.Title(), index+1, current))
	}
}

func (b *Bot) renderDayEditor(chatID int64, messageID int, st *operatorState, day model.WeekDay) {
	slots := schedule.SlotsForDay(&st.Values, day)

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📅 *%s — %s*\n\n", day.Title(), st.BranchName))
	for i, slot := range slots {
		message.WriteString(fmt.Sprintf("%d. %s–%s\n", i+1, slot.StartTime, slot.EndTime))
	}
	if len(slots) == 0 {
		message.WriteString("No time slots.\n")
	}

	var keyboard [][]tgbotapi.InlineKeyboardButton
	for i := range slots {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✏️ %d start", i+1), fmt.Sprintf("day:edit:%s:%d:start", day, i)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✏️ %d end", i+1), fmt.Sprintf("day:edit:%s:%d:end", day, i)),
		}
		if len(slots) > 1 {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("day:del:%s:%d", day, i)))
		}
		keyboard = append(keyboard, row)
	}
	if !schedule.HasMaxSlots(&st.Values, day) {
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("➕ Add slot", "day:add:"+string(day)),
		})
	}
	keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "set:menu"),
	})

	b.sendOrEdit(chatID, messageID, message.String(), tgbotapi.NewInlineKeyboardMarkup(keyboard...))
}

// handleTimeInput runs the operator's message through the same
// character-level clamping the slot fields use, so "9:3" becomes
// "09:03" on blur and out-of-range halves are rejected outright.
func (b *Bot) handleTimeInput(chatID int64, st *operatorState, text string) {
	if st.Input == nil {
		st.Step = stepMenu
		return
	}
	value, ok := applyTimeText(st.Input, text)
	if !ok {
		b.reply(chatID, "Invalid time. Use HH:MM, e.g. 09:30.")
		return
	}
	schedule.UpdateTimeSlot(&st.Values, st.Day, st.SlotIndex, st.Field, value)
	st.Step = stepMenu
	st.Input = nil
	b.renderDayEditor(chatID, 0, st, st.Day)
}

// applyTimeText replays the text through the field one character at a
// time, mirroring keystroke handling, then blurs both halves.
func applyTimeText(f *timeinput.Field, text string) (string, bool) {
	hoursPart, minutesPart := splitTimeText(text)
	if hoursPart == "" && minutesPart == "" {
		return "", false
	}

	acc := ""
	f.SetHours("")
	for _, r := range hoursPart {
		acc += string(r)
		f.SetHours(acc)
	}
	acc = ""
	f.SetMinutes("")
	for _, r := range minutesPart {
		acc += string(r)
		f.SetMinutes(acc)
	}
	f.BlurHours()
	f.BlurMinutes()
	return f.Value()
}

func splitTimeText(text string) (string, string) {
	text = strings.TrimSpace(text)
	if before, after, found := strings.Cut(text, ":"); found {
		return before, after
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if len(digits) > 2 {
		return digits[:2], digits[2:]
	}
	return digits, ""
}

func (b *Bot) sendOrEdit(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	if messageID != 0 {
		editMsg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
		editMsg.ParseMode = "Markdown"
		_, _ = b.tg.Send(editMsg)
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	msg.ParseMode = "Markdown"
	_, _ = b.tg.Send(msg)
}
