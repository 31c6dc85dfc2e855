package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	huh "charm.land/huh/v2"

	"github.com/zhubert/chatsh/internal/converter"
	"github.com/zhubert/chatsh/internal/session"
)

// Prompt text
const (
	TextTitle       = "Text:"
	TextDescription = "Input 'quit' or 'exit' to quit the program."
	ChoiceTitle     = "What do you want to do next?"
	CommandTitle    = "Command:"
)

// Console is a line-oriented terminal that drives a session with huh prompts.
type Console struct {
	out        io.Writer
	width      int
	accessible bool

	// runForm runs a single prompt. Tests replace it to avoid a real TTY.
	runForm func(ctx context.Context, form *huh.Form) error
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithOutput sets where greetings, details, errors and the spinner are written.
func WithOutput(w io.Writer) ConsoleOption {
	return func(c *Console) { c.out = w }
}

// WithWidth sets the wrap width for descriptions.
func WithWidth(width int) ConsoleOption {
	return func(c *Console) { c.width = width }
}

// WithAccessible switches prompts to huh's plain accessible mode.
func WithAccessible(accessible bool) ConsoleOption {
	return func(c *Console) { c.accessible = accessible }
}

// NewConsole creates a Console writing to stdout.
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		out:   os.Stdout,
		width: DefaultWrapWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.runForm = func(ctx context.Context, form *huh.Form) error {
		return form.RunWithContext(ctx)
	}
	return c
}

var _ session.Terminal = (*Console)(nil)

func (c *Console) newForm(field huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(PromptTheme()).
		WithShowHelp(false).
		WithAccessible(c.accessible)
}

func (c *Console) run(ctx context.Context, form *huh.Form) error {
	err := c.runForm(ctx, form)
	if errors.Is(err, huh.ErrUserAborted) {
		return session.ErrAborted
	}
	return err
}

// Greet prints the banner.
func (c *Console) Greet(message string) {
	fmt.Fprintln(c.out, RenderGreeting(message))
}

// ReadText prompts for a request.
func (c *Console) ReadText(ctx context.Context) (string, error) {
	var text string
	form := c.newForm(huh.NewInput().
		Title(TextTitle).
		Description(TextDescription).
		Value(&text))
	if err := c.run(ctx, form); err != nil {
		return "", err
	}
	return text, nil
}

// ShowDetail prints the converted descriptions and command.
func (c *Console) ShowDetail(d converter.Detail) {
	fmt.Fprint(c.out, RenderDetail(d, c.width))
}

// Choose offers the follow-up menu.
func (c *Console) Choose(ctx context.Context) (session.Choice, error) {
	choice := session.ChoiceExecute
	options := make([]huh.Option[session.Choice], 0, len(session.Choices))
	for _, ch := range session.Choices {
		options = append(options, huh.NewOption(ch.String(), ch))
	}
	form := c.newForm(huh.NewSelect[session.Choice]().
		Title(ChoiceTitle).
		Options(options...).
		Value(&choice))
	if err := c.run(ctx, form); err != nil {
		return session.ChoiceCancel, err
	}
	return choice, nil
}

// EditCommand prompts for a command, pre-filled with initial. Multi-line
// commands get a text area so each line stays on its own row.
//
// huh fields normalize their value (the single-line input folds newlines and
// tabs into spaces, the text area expands tabs). Submitting the prompt
// without changes therefore returns initial verbatim rather than the
// normalized text.
func (c *Console) EditCommand(ctx context.Context, initial string) (string, error) {
	var baseline string
	editField(initial, &baseline).Blur()

	command := initial
	form := c.newForm(editField(initial, &command))
	if err := c.run(ctx, form); err != nil {
		return "", err
	}
	return resolveEdit(initial, baseline, command), nil
}

// editField builds the command prompt bound to value, pre-filled with initial.
func editField(initial string, value *string) huh.Field {
	*value = initial
	if strings.Contains(initial, "\n") {
		lines := strings.Count(initial, "\n") + 1
		return huh.NewText().
			Title(CommandTitle).
			Lines(min(lines+1, maxEditLines)).
			CharLimit(0).
			Value(value)
	}
	return huh.NewInput().
		Title(CommandTitle).
		Value(value)
}

// maxEditLines caps the height of the multi-line command prompt.
const maxEditLines = 10

// resolveEdit returns initial when the submitted text is exactly what the
// field showed before any edit, and the submitted text otherwise.
func resolveEdit(initial, baseline, submitted string) string {
	if submitted == baseline {
		return initial
	}
	return strings.TrimRight(submitted, "\r\n")
}

// ShowError prints err.
func (c *Console) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(c.out, RenderError(err))
}

// ShowHint prints a secondary note.
func (c *Console) ShowHint(msg string) {
	fmt.Fprintln(c.out, RenderHint(msg))
}

// StartProgress shows a spinner until stop is called.
func (c *Console) StartProgress(label string) (stop func()) {
	return StartSpinner(c.out, label)
}
