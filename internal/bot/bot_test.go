package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"stolik/internal/confirm"
	"stolik/internal/model"
	"stolik/internal/schedule"
	"stolik/internal/service"
	"stolik/internal/store"
	"stolik/internal/timeinput"
)

type fakeTelegram struct {
	sent []tgbotapi.Chattable
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeTelegram) SelfUser() tgbotapi.User {
	return tgbotapi.User{UserName: "stolik_test_bot"}
}

func (f *fakeTelegram) lastMessageText() string {
	for i := len(f.sent) - 1; i >= 0; i-- {
		if msg, ok := f.sent[i].(tgbotapi.MessageConfig); ok {
			return msg.Text
		}
	}
	return ""
}

type fakeAPI struct {
	listFn    func(ctx context.Context) ([]model.Branch, error)
	getFn     func(ctx context.Context, id string) (*model.Branch, error)
	updateFn  func(ctx context.Context, id string, payload any) (*model.Branch, error)
	enableFn  func(ctx context.Context, id string) (*model.Branch, error)
	disableFn func(ctx context.Context, id string) (*model.Branch, error)
	allFn     func(ctx context.Context, ids []string) error
}

func (f *fakeAPI) ListBranches(ctx context.Context) ([]model.Branch, error) {
	return f.listFn(ctx)
}

func (f *fakeAPI) GetBranch(ctx context.Context, id string) (*model.Branch, error) {
	return f.getFn(ctx, id)
}

func (f *fakeAPI) UpdateBranch(ctx context.Context, id string, payload any) (*model.Branch, error) {
	return f.updateFn(ctx, id, payload)
}

func (f *fakeAPI) EnableReservations(ctx context.Context, id string) (*model.Branch, error) {
	return f.enableFn(ctx, id)
}

func (f *fakeAPI) DisableReservations(ctx context.Context, id string) (*model.Branch, error) {
	return f.disableFn(ctx, id)
}

func (f *fakeAPI) DisableAll(ctx context.Context, ids []string) error {
	return f.allFn(ctx, ids)
}

func newTestBot(t *testing.T, api *fakeAPI, managers []int64) (*Bot, *fakeTelegram) {
	t.Helper()
	logger := zerolog.Nop()
	svc := service.New(api, store.New(), nil, &logger)
	tg := &fakeTelegram{}
	b, err := NewWithTelegramClient(tg, svc, nil, t.TempDir(), managers, &logger)
	assert.NoError(t, err)
	return b, tg
}

func message(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func TestNonManagerIsRejected(t *testing.T) {
	b, tg := newTestBot(t, &fakeAPI{}, []int64{42})

	b.handleMessage(context.Background(), message(7, 7, "/branches"))

	assert.Equal(t, "You are not authorized to use this bot.", tg.lastMessageText())
}

func TestBranchListShowsTableCounts(t *testing.T) {
	api := &fakeAPI{
		listFn: func(context.Context) ([]model.Branch, error) {
			return []model.Branch{
				{
					ID: "b1", Name: "Downtown", AcceptsReservations: true,
					Sections: []model.Section{{Tables: []model.Table{
						{ID: "t1", AcceptsReservations: true},
						{ID: "t2", AcceptsReservations: true},
					}}},
				},
				{ID: "b2", Name: "Airport"},
			}, nil
		},
	}
	b, tg := newTestBot(t, api, []int64{42})

	b.handleMessage(context.Background(), message(42, 42, "/branches"))

	text := tg.lastMessageText()
	assert.Contains(t, text, "1 accepting reservations, 1 not")

	msg := tg.sent[len(tg.sent)-1].(tgbotapi.MessageConfig)
	markup := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.Equal(t, "✅ Downtown (2 tables)", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "🚫 Airport", markup.InlineKeyboard[1][0].Text)
}

func TestDurationInputRejectsNonNumbers(t *testing.T) {
	b, tg := newTestBot(t, &fakeAPI{}, []int64{42})
	st := b.state.get(42)
	st.Step = stepDuration
	st.BranchID = "b1"

	b.handleMessage(context.Background(), message(42, 42, "ninety"))
	assert.Contains(t, tg.lastMessageText(), "whole number of minutes")
	assert.Equal(t, stepDuration, st.Step)

	b.handleMessage(context.Background(), message(42, 42, "90"))
	assert.Equal(t, 90, st.Values.ReservationDuration)
	assert.Equal(t, stepMenu, st.Step)
}

func TestToggleTable(t *testing.T) {
	b, _ := newTestBot(t, &fakeAPI{}, []int64{42})
	st := b.state.get(42)
	st.BranchID = "b1"
	st.Values.EnabledTables = []string{"t1"}

	b.toggleTable(42, 0, st, "t2")
	assert.Equal(t, []string{"t1", "t2"}, st.Values.EnabledTables)

	b.toggleTable(42, 0, st, "t1")
	assert.Equal(t, []string{"t2"}, st.Values.EnabledTables)
}

func TestApplyTimeText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"09:30", "09:30", true},
		{"9:3", "09:03", true},
		{"0930", "09:30", true},
		{"7", "07:00", true},
		{"99:00", "09:00", true}, // second 9 rejected, blur pads the kept digit
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		f := timeinput.New("", "")
		got, ok := applyTimeText(f, tt.input)
		assert.Equal(t, tt.ok, ok, "input: %q", tt.input)
		assert.Equal(t, tt.expected, got, "input: %q", tt.input)
	}
}

func TestTimeInputUpdatesSlot(t *testing.T) {
	b, _ := newTestBot(t, &fakeAPI{}, []int64{42})
	st := b.state.get(42)
	st.BranchID = "b1"
	st.BranchName = "Downtown"
	st.Values = model.FormValues{
		Schedules: []model.DaySchedule{
			{Day: model.Saturday, TimeSlots: []model.TimeSlot{{ID: "s1", StartTime: "09:00", EndTime: "17:00"}}},
		},
	}
	st.Step = stepTime
	st.Day = model.Saturday
	st.SlotIndex = 0
	st.Field = schedule.FieldStartTime
	st.Input = timeinput.New("", "")
	st.Input.Init("09:00")

	b.handleMessage(context.Background(), message(42, 42, "10:15"))

	assert.Equal(t, "10:15", st.Values.Schedules[0].TimeSlots[0].StartTime)
	assert.Equal(t, stepMenu, st.Step)
	assert.Nil(t, st.Input)
}

func TestConfirmDisableFlow(t *testing.T) {
	disabled := false
	api := &fakeAPI{
		listFn: func(context.Context) ([]model.Branch, error) {
			return []model.Branch{{ID: "b1", Name: "Downtown"}}, nil
		},
		disableFn: func(_ context.Context, id string) (*model.Branch, error) {
			disabled = true
			return &model.Branch{ID: id, Name: "Downtown"}, nil
		},
	}
	b, tg := newTestBot(t, api, []int64{42})
	b.svc.Store().Set([]model.Branch{{ID: "b1", Name: "Downtown", AcceptsReservations: true}})

	b.openToggle(42, 42, actionDisable, "b1")
	st := b.state.get(42)
	assert.True(t, st.Confirms.State().Show)
	assert.Contains(t, tg.lastMessageText(), "Are you sure you want to disable reservations for Downtown?")

	b.handleConfirmCallback(context.Background(), 42, 42, "yes")
	assert.True(t, disabled)
	assert.Equal(t, confirm.ModeResult, st.Confirms.State().Mode)
	assert.Contains(t, tg.lastMessageText(), "Reservations disabled successfully.")

	b.handleConfirmCallback(context.Background(), 42, 42, "ok")
	assert.False(t, st.Confirms.State().Show)
}

func TestDisableAllWithNothingEnabled(t *testing.T) {
	b, tg := newTestBot(t, &fakeAPI{}, []int64{42})
	b.svc.Store().Set([]model.Branch{{ID: "b1", Name: "Downtown"}})

	b.openDisableAll(42, 42)

	assert.Equal(t, "No branches currently accept reservations.", tg.lastMessageText())
}
