package confirm

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const actionTest Action = "test_action"

func newController() *Controller {
	logger := zerolog.New(io.Discard)
	return NewController(&logger)
}

func TestOpenUnknownActionIsNoop(t *testing.T) {
	c := newController()
	c.Open(Action("unregistered"), nil)
	assert.False(t, c.State().Show)
}

func TestOpenPopulatesState(t *testing.T) {
	c := newController()
	c.Register(actionTest, Config{
		Title:       "Disable all?",
		MessageFunc: func(data any) string { return "Disable " + data.(string) + "?" },
		ConfirmText: "Disable",
		CancelText:  "Keep",
		Variant:     VariantDanger,
		OnConfirm:   func(ctx context.Context, data any) error { return nil },
	})

	c.Open(actionTest, "Downtown")

	st := c.State()
	assert.True(t, st.Show)
	assert.Equal(t, ModeConfirmation, st.Mode)
	assert.Equal(t, "Disable all?", st.Title)
	assert.Equal(t, "Disable Downtown?", st.Message)
	assert.Equal(t, "Disable", st.ConfirmText)
	assert.Equal(t, VariantDanger, st.Variant)
}

func TestConfirmSuccessWithMessage(t *testing.T) {
	c := newController()
	ran := false
	c.Register(actionTest, Config{
		Title:          "t",
		Message:        "m",
		OnConfirm:      func(ctx context.Context, data any) error { ran = true; return nil },
		SuccessMessage: "All done.",
	})

	c.Open(actionTest, nil)
	assert.NoError(t, c.Confirm(context.Background()))

	assert.True(t, ran)
	st := c.State()
	assert.True(t, st.Show)
	assert.Equal(t, ModeResult, st.Mode)
	assert.Equal(t, "Success!", st.Title)
	assert.Equal(t, "All done.", st.Message)
	assert.Equal(t, VariantSuccess, st.Variant)

	// Confirming a result dialog just closes it.
	assert.NoError(t, c.Confirm(context.Background()))
	assert.False(t, c.State().Show)
}

func TestConfirmSuccessWithoutMessageCloses(t *testing.T) {
	c := newController()
	c.Register(actionTest, Config{
		OnConfirm: func(ctx context.Context, data any) error { return nil },
	})

	c.Open(actionTest, nil)
	assert.NoError(t, c.Confirm(context.Background()))
	assert.False(t, c.State().Show)
}

func TestConfirmFailure(t *testing.T) {
	c := newController()
	boom := errors.New("boom")
	c.Register(actionTest, Config{
		OnConfirm:    func(ctx context.Context, data any) error { return boom },
		ErrorMessage: "Could not disable reservations.",
	})

	c.Open(actionTest, nil)
	err := c.Confirm(context.Background())
	assert.ErrorIs(t, err, boom)

	st := c.State()
	assert.Equal(t, ModeResult, st.Mode)
	assert.Equal(t, "Error", st.Title)
	assert.Equal(t, "Could not disable reservations.", st.Message)
	assert.Equal(t, VariantDanger, st.Variant)
}

func TestConfirmFailureGenericMessage(t *testing.T) {
	c := newController()
	c.Register(actionTest, Config{
		OnConfirm: func(ctx context.Context, data any) error { return errors.New("boom") },
	})

	c.Open(actionTest, nil)
	_ = c.Confirm(context.Background())
	assert.Equal(t, "An error occurred while processing your request.", c.State().Message)
}

func TestCancelRunsCallbackAndResets(t *testing.T) {
	c := newController()
	var cancelledWith any
	c.Register(actionTest, Config{
		OnConfirm: func(ctx context.Context, data any) error { return nil },
		OnCancel:  func(data any) { cancelledWith = data },
	})

	c.Open(actionTest, 42)
	c.Cancel()

	assert.Equal(t, 42, cancelledWith)
	st := c.State()
	assert.False(t, st.Show)
	assert.Equal(t, ModeConfirmation, st.Mode, "next open starts in confirmation mode")
}

func TestCancelInResultModeSkipsCallback(t *testing.T) {
	c := newController()
	cancelled := false
	c.Register(actionTest, Config{
		OnConfirm:      func(ctx context.Context, data any) error { return nil },
		OnCancel:       func(data any) { cancelled = true },
		SuccessMessage: "ok",
	})

	c.Open(actionTest, nil)
	_ = c.Confirm(context.Background())
	c.Cancel()

	assert.False(t, cancelled)
	assert.False(t, c.State().Show)
}
