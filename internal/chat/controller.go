package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/diogo/querychat/internal/api"
)

// Fixed bot texts for failed exchanges
const (
	TransportFailureText = "Error: Could not connect to the chatbot API. Please check your connection or the server."
	ServerErrorFallback  = "Could not reach the server."
	MalformedAnswerText  = "Error: The server returned an answer that could not be read."
)

// State is the send controller's position in the request cycle
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSending
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSending:
		return "sending"
	case StateSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// Querier sends one question to the backend and settles it into an Outcome
type Querier interface {
	Query(ctx context.Context, question string) api.Outcome
}

// Pending is an issued, not yet settled, question
type Pending struct {
	Question    string
	placeholder *Placeholder
	startedAt   time.Time
}

// Controller drives one request/response cycle at a time:
// Idle -> Validating -> Sending -> Settling -> Idle.
//
// All methods except Await must be called from the single goroutine that owns the
// Surface. Await only talks to the Querier and may run elsewhere.
type Controller struct {
	surface    Surface
	input      InputField
	querier    Querier
	transcript *Transcript
	loading    *LoadingIndicator
	logger     *zap.Logger

	state   State
	enabled bool
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithLogger sets the controller's logger
func WithLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController wires a controller, its transcript and its loading indicator to surface
func NewController(surface Surface, input InputField, querier Querier, opts ...ControllerOption) *Controller {
	transcript := NewTranscript(surface)

	c := &Controller{
		surface:    surface,
		input:      input,
		querier:    querier,
		transcript: transcript,
		loading:    NewLoadingIndicator(transcript, surface),
		logger:     zap.NewNop(),
		state:      StateIdle,
		enabled:    true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Transcript returns the controller's transcript
func (c *Controller) Transcript() *Transcript {
	return c.transcript
}

// Loading returns the controller's loading indicator
func (c *Controller) Loading() *LoadingIndicator {
	return c.loading
}

// State returns the current cycle state
func (c *Controller) State() State {
	return c.state
}

// ControlsEnabled reports whether the text field and submit control accept input
func (c *Controller) ControlsEnabled() bool {
	return c.enabled
}

// HandleKey submits on Enter without shift. Any other key, including
// Shift+Enter, is left to the input field.
func (c *Controller) HandleKey(ev KeyEvent) (Pending, bool) {
	if !IsSubmitKey(ev) {
		return Pending{}, false
	}
	return c.Submit()
}

// Submit validates the input field and, when it holds a non-empty question,
// echoes it, clears the field, shows the placeholder and disables the controls.
// It returns false when nothing was sent: empty input, or a request is already
// in flight.
func (c *Controller) Submit() (Pending, bool) {
	if c.state != StateIdle || !c.enabled {
		c.logger.Debug("submit ignored", zap.Stringer("state", c.state))
		return Pending{}, false
	}

	c.state = StateValidating
	question := strings.TrimSpace(c.input.Value())
	if question == "" {
		c.state = StateIdle
		return Pending{}, false
	}

	c.transcript.Render(question, SenderUser)
	c.input.SetValue("")
	placeholder := c.loading.Show()
	c.setControlsEnabled(false)
	c.state = StateSending

	c.logger.Info("question submitted", zap.Int("question_length", len(question)))

	return Pending{
		Question:    question,
		placeholder: placeholder,
		startedAt:   time.Now(),
	}, true
}

// Await performs the suspension point of the cycle. A panicking Querier is
// settled as a transport failure.
func (c *Controller) Await(ctx context.Context, p Pending) (out api.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = api.TransportFailure(fmt.Errorf("query panicked: %v", r))
		}
	}()
	return c.querier.Query(ctx, p.Question)
}

// Settle removes the placeholder, renders exactly one bot message for out and
// re-enables the controls. It returns false if p is not the request in flight.
func (c *Controller) Settle(p Pending, out api.Outcome) (Message, bool) {
	if c.state != StateSending || !p.placeholder.Attached() {
		c.logger.Debug("stale settle ignored", zap.Stringer("state", c.state))
		return Message{}, false
	}

	c.state = StateSettling
	defer func() {
		c.setControlsEnabled(true)
		c.state = StateIdle
	}()

	c.loading.Hide(p.placeholder)
	msg := c.transcript.Render(BotText(out), SenderBot)

	fields := []zap.Field{
		zap.String("outcome", out.Kind.String()),
		zap.Int("status", out.StatusCode),
		zap.Duration("elapsed", time.Since(p.startedAt)),
	}
	if out.Err != nil {
		c.logger.Warn("question settled with error", append(fields, zap.Error(out.Err))...)
	} else {
		c.logger.Info("question settled", fields...)
	}

	return msg, true
}

// Send runs a complete cycle synchronously. It returns false when nothing was sent.
func (c *Controller) Send(ctx context.Context) (api.Outcome, bool) {
	p, ok := c.Submit()
	if !ok {
		return api.Outcome{}, false
	}

	out := c.Await(ctx, p)
	c.Settle(p, out)
	return out, true
}

// BotText maps an outcome to the bot message shown for it
func BotText(out api.Outcome) string {
	switch out.Kind {
	case api.OutcomeAnswer:
		return out.Answer
	case api.OutcomeServerError:
		message := out.ServerMessage
		if message == "" {
			message = ServerErrorFallback
		}
		return "Error: " + message
	case api.OutcomeMalformedAnswer:
		return MalformedAnswerText
	case api.OutcomeTransportFailure:
		return TransportFailureText
	default:
		return TransportFailureText
	}
}

func (c *Controller) setControlsEnabled(enabled bool) {
	c.enabled = enabled
	c.surface.SetControlsEnabled(enabled)
}
