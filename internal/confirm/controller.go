// Package confirm drives the confirm/result dialog used to gate
// destructive console actions.
package confirm

import (
	"context"

	"github.com/rs/zerolog"
)

// Action identifies one registered confirmable operation. Callers declare
// their action set as constants; lookups never invent actions at runtime.
type Action string

// Variant selects the dialog styling.
type Variant string

const (
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantDefault Variant = "default"
)

// Mode is the dialog phase: asking for confirmation, or showing the
// outcome of a confirmed action.
type Mode string

const (
	ModeConfirmation Mode = "confirmation"
	ModeResult       Mode = "result"
)

// Config describes one confirmable action. Message, SuccessMessage and
// ErrorMessage may be static strings or functions of the opening data;
// the function wins when both are set.
type Config struct {
	Title       string
	Message     string
	MessageFunc func(data any) string
	ConfirmText string
	CancelText  string
	Variant     Variant

	OnConfirm func(ctx context.Context, data any) error
	OnCancel  func(data any)

	SuccessMessage     string
	SuccessMessageFunc func(data any) string
	ErrorMessage       string
	ErrorMessageFunc   func(data any) string
}

// State is the dialog snapshot the rendering layer draws from.
type State struct {
	Show        bool
	Action      Action
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Variant     Variant
	Loading     bool
	Data        any
	Mode        Mode
}

const genericErrorMessage = "An error occurred while processing your request."

// Controller owns the dialog state machine:
// closed -> confirming -> (executing ->) result -> closed.
type Controller struct {
	configs map[Action]Config
	state   State
	logger  *zerolog.Logger
}

func NewController(logger *zerolog.Logger) *Controller {
	return &Controller{
		configs: make(map[Action]Config),
		state:   State{Mode: ModeConfirmation, ConfirmText: "Confirm", CancelText: "Cancel", Variant: VariantDanger},
		logger:  logger,
	}
}

// Register adds or replaces the config for an action.
func (c *Controller) Register(action Action, cfg Config) {
	c.configs[action] = cfg
}

// Open moves the dialog to confirming mode for the given action. Opening
// an unregistered action is reported and ignored, never fatal.
func (c *Controller) Open(action Action, data any) {
	cfg, ok := c.configs[action]
	if !ok {
		c.logger.Error().Str("action", string(action)).Msg("no confirmation configured for action")
		return
	}

	message := cfg.Message
	if cfg.MessageFunc != nil {
		message = cfg.MessageFunc(data)
	}

	c.state = State{
		Show:        true,
		Action:      action,
		Title:       cfg.Title,
		Message:     message,
		ConfirmText: cfg.ConfirmText,
		CancelText:  cfg.CancelText,
		Variant:     cfg.Variant,
		Data:        data,
		Mode:        ModeConfirmation,
	}
}

// ShowResult switches the dialog into result mode with the given message.
func (c *Controller) ShowResult(title, message string, variant Variant) {
	c.state = State{
		Show:        true,
		Title:       title,
		Message:     message,
		ConfirmText: "OK",
		Variant:     variant,
		Mode:        ModeResult,
	}
}

// Confirm acts on the current dialog. In result mode it simply closes. In
// confirmation mode it runs the action handler: success shows the
// configured success message (or closes when none is set), failure shows
// the configured or generic error message. The handler error is returned
// after the dialog already reflects it.
func (c *Controller) Confirm(ctx context.Context) error {
	if c.state.Mode == ModeResult {
		c.reset()
		return nil
	}

	cfg, ok := c.configs[c.state.Action]
	if !ok {
		return nil
	}
	data := c.state.Data

	c.state.Loading = true
	err := cfg.OnConfirm(ctx, data)
	c.state.Loading = false

	if err != nil {
		c.logger.Error().Err(err).Str("action", string(c.state.Action)).Msg("confirmation action failed")
		message := cfg.ErrorMessage
		if cfg.ErrorMessageFunc != nil {
			message = cfg.ErrorMessageFunc(data)
		}
		if message == "" {
			message = genericErrorMessage
		}
		c.ShowResult("Error", message, VariantDanger)
		return err
	}

	message := cfg.SuccessMessage
	if cfg.SuccessMessageFunc != nil {
		message = cfg.SuccessMessageFunc(data)
	}
	if message != "" {
		c.ShowResult("Success!", message, VariantSuccess)
	} else {
		c.reset()
	}
	return nil
}

// Cancel dismisses the dialog. In confirmation mode the action's cancel
// callback runs first.
func (c *Controller) Cancel() {
	if c.state.Mode == ModeConfirmation {
		if cfg, ok := c.configs[c.state.Action]; ok && cfg.OnCancel != nil {
			cfg.OnCancel(c.state.Data)
		}
	}
	c.reset()
}

// State returns the current dialog snapshot.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) reset() {
	c.state = State{Mode: ModeConfirmation, ConfirmText: "Confirm", CancelText: "Cancel", Variant: VariantDanger}
}
