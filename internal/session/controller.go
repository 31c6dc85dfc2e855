package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/zhubert/chatsh/internal/converter"
	cerrors "github.com/zhubert/chatsh/internal/errors"
	"github.com/zhubert/chatsh/internal/executor"
	"github.com/zhubert/chatsh/internal/logger"
)

// DefaultGreeting is printed when the session starts.
const DefaultGreeting = "Convert your text to shell commands"

// ProgressLabel is shown next to the spinner while converting.
const ProgressLabel = "Converting"

// quitKeywords end the session from WaitingText.
var quitKeywords = []string{"exit", "quit"}

// ErrAborted is returned by a Terminal when the user aborts a prompt.
var ErrAborted = errors.New("user aborted")

// Terminal is the interactive surface the controller talks to.
type Terminal interface {
	Greet(message string)
	// ReadText prompts for the user's request.
	ReadText(ctx context.Context) (string, error)
	ShowDetail(d converter.Detail)
	Choose(ctx context.Context) (Choice, error)
	// EditCommand prompts with initial pre-filled and returns the edited text.
	EditCommand(ctx context.Context, initial string) (string, error)
	ShowError(err error)
	// StartProgress shows a progress indicator until stop is called.
	// stop blocks until the indicator is gone from the screen.
	StartProgress(label string) (stop func())
}

// Option configures a Controller.
type Option func(*Controller)

// WithGreeting overrides DefaultGreeting.
func WithGreeting(greeting string) Option {
	return func(c *Controller) { c.greeting = greeting }
}

// WithSessionID sets the ID used in log lines. A random one is used otherwise.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// WithOnConverted registers a hook called with each accepted detail.
func WithOnConverted(fn func(converter.Detail)) Option {
	return func(c *Controller) { c.onConverted = fn }
}

// WithOnExecuted registers a hook called after every execution attempt.
func WithOnExecuted(fn func(command string, err error)) Option {
	return func(c *Controller) { c.onExecuted = fn }
}

// Controller owns the session state machine and the last converted detail.
// It is not safe for concurrent use; Run is the only entry point.
type Controller struct {
	id        string
	converter converter.Converter
	executor  executor.Executor
	term      Terminal
	greeting  string

	state      State
	lastDetail converter.Detail
	hasDetail  bool

	onConverted func(converter.Detail)
	onExecuted  func(command string, err error)

	log *slog.Logger
}

// New creates a controller in StateBegin.
func New(conv converter.Converter, exec executor.Executor, term Terminal, opts ...Option) *Controller {
	c := &Controller{
		converter: conv,
		executor:  exec,
		term:      term,
		greeting:  DefaultGreeting,
		state:     StateBegin,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.New().String()
	}
	c.log = logger.WithSession(c.id)
	return c
}

// ID returns the session ID.
func (c *Controller) ID() string {
	return c.id
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// LastDetail returns the stored detail, if any.
func (c *Controller) LastDetail() (converter.Detail, bool) {
	return c.lastDetail, c.hasDetail
}

// Run drives the session until StateEnd. Conversion and execution errors
// are reported to the user and never returned; a non-nil error means the
// terminal failed.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Info("Session started")
	for c.state != StateEnd {
		if err := c.step(ctx); err != nil {
			c.log.Error("Session stopped by terminal failure", "state", c.state.String(), "error", err)
			return err
		}
	}
	c.log.Info("Session ended")
	return nil
}

// step performs the side effect of the current state and applies the
// resulting event.
func (c *Controller) step(ctx context.Context) error {
	switch c.state {
	case StateBegin:
		c.term.Greet(c.greeting)
		c.apply(EventGreeted)
		return nil
	case StateWaitingText:
		return c.waitText(ctx)
	case StateWaitingUserChoice:
		return c.waitChoice(ctx)
	default:
		return fmt.Errorf("session: no step for state %s", c.state)
	}
}

func (c *Controller) waitText(ctx context.Context) error {
	text, err := c.term.ReadText(ctx)
	if err != nil {
		return c.promptFailed(err)
	}

	question := strings.TrimSpace(text)
	if question == "" {
		return nil
	}
	if isQuitKeyword(question) {
		c.apply(EventQuit)
		return nil
	}

	detail, err := c.convert(ctx, question)
	if err != nil {
		c.log.Warn("Conversion failed", "error", err)
		c.term.ShowError(err)
		c.apply(EventConvertFailed)
		return nil
	}

	c.term.ShowDetail(detail)
	if c.onConverted != nil {
		c.onConverted(detail)
	}
	c.lastDetail, c.hasDetail = detail, true
	c.apply(EventConverted)
	return nil
}

// convert calls the converter with the progress indicator running, and
// rejects details that break the Detail invariants.
func (c *Controller) convert(ctx context.Context, question string) (converter.Detail, error) {
	stop := c.term.StartProgress(ProgressLabel)
	detail, err := func() (converter.Detail, error) {
		defer stop()
		return c.converter.Convert(ctx, question)
	}()
	if err != nil {
		return converter.Detail{}, err
	}
	if err := detail.Validate(); err != nil {
		return converter.Detail{}, cerrors.ConversionInvalidDetail(err)
	}
	return detail, nil
}

func (c *Controller) waitChoice(ctx context.Context) error {
	if !c.hasDetail {
		// Unreachable through apply; recover rather than run nothing.
		c.log.Error("WaitingUserChoice without a detail")
		c.state = StateWaitingText
		return nil
	}

	choice, err := c.term.Choose(ctx)
	if err != nil {
		return c.promptFailed(err)
	}
	c.log.Debug("User chose", "choice", choice.String())

	switch choice {
	case ChoiceExecute:
		c.execute(ctx, c.lastDetail.Command())
	case ChoiceEditAndRun:
		edited, err := c.term.EditCommand(ctx, c.lastDetail.Command())
		if err != nil {
			return c.promptFailed(err)
		}
		c.execute(ctx, edited)
	case ChoiceAskAnother:
		c.apply(EventAskAnother)
	case ChoiceCancel:
		c.apply(EventCancel)
	default:
		return fmt.Errorf("session: unknown choice %d", choice)
	}
	return nil
}

// execute runs command once and folds the result into the state.
func (c *Controller) execute(ctx context.Context, command string) {
	var err error
	if strings.TrimSpace(command) == "" {
		err = cerrors.ExecutionEmpty()
	} else {
		err = c.executor.Execute(ctx, command)
	}

	if c.onExecuted != nil {
		c.onExecuted(command, err)
	}

	if err != nil {
		c.log.Warn("Execution failed", "command", command, "error", err)
		c.term.ShowError(err)
		c.apply(EventExecuteFailed)
		return
	}
	c.apply(EventExecuted)
}

// promptFailed ends the session on a user abort and surfaces anything else.
func (c *Controller) promptFailed(err error) error {
	if errors.Is(err, ErrAborted) {
		c.apply(EventAborted)
		return nil
	}
	return err
}

// apply moves to the next state and keeps lastDetail consistent with it.
func (c *Controller) apply(ev Event) {
	next := Next(c.state, ev)
	if next == StateWaitingText {
		c.lastDetail, c.hasDetail = converter.Detail{}, false
	}
	c.log.Debug("State transition", "from", c.state.String(), "event", ev.String(), "to", next.String())
	c.state = next
}

func isQuitKeyword(s string) bool {
	for _, kw := range quitKeywords {
		if strings.EqualFold(s, kw) {
			return true
		}
	}
	return false
}
