package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/chatsh/internal/converter"
)

// DefaultWrapWidth is the column width descriptions are wrapped at when the
// terminal width is unknown.
const DefaultWrapWidth = 80

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return CommandStyle.Render(code)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return CommandStyle.Render(code)
	}

	return buf.String()
}

// RenderGreeting renders the session banner.
func RenderGreeting(greeting string) string {
	return GreetingStyle.Render(greeting)
}

// RenderDetail renders a converted command as a numbered list of
// descriptions followed by the highlighted command:
//
//	Description:
//	  1. List all files
//	  2. Including hidden ones
//
//	Command:
//	  ls -a
//
// Descriptions longer than width are wrapped with a hanging indent so the
// continuation lines align under the text rather than the number.
func RenderDetail(d converter.Detail, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var b strings.Builder
	b.WriteString(HeadingStyle.Render("Description:"))
	b.WriteString("\n")

	descriptions := d.Descriptions()
	numWidth := len(fmt.Sprintf("%d", len(descriptions)))
	for i, desc := range descriptions {
		prefix := fmt.Sprintf("  %*d. ", numWidth, i+1)
		indent := strings.Repeat(" ", len(prefix))

		textWidth := width - len(prefix)
		if textWidth < 10 {
			textWidth = 10
		}
		lines := strings.Split(ansi.Wordwrap(desc, textWidth, ""), "\n")
		for j, line := range lines {
			if j == 0 {
				b.WriteString(IndexStyle.Render(prefix))
			} else {
				b.WriteString(indent)
			}
			b.WriteString(DescriptionStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(HeadingStyle.Render("Command:"))
	b.WriteString("\n  ")
	b.WriteString(strings.TrimRight(highlightCode(d.Command(), "bash"), "\n"))
	b.WriteString("\n")

	return b.String()
}

// RenderError renders an error report line.
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	return ErrorLabelStyle.Render("Error:") + " " + ErrorStyle.Render(err.Error())
}

// RenderHint renders a secondary note.
func RenderHint(msg string) string {
	return HintStyle.Render(msg)
}
