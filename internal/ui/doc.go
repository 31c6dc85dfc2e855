// Package ui renders a chatsh session on a plain terminal.
//
// # Overview
//
// Console implements session.Terminal. Prompts are single-field huh forms
// that run one at a time, so the screen reads top to bottom like a
// transcript:
//
//	Convert your text to shell commands
//	┃ Text:
//	┃ > list files
//	Description:
//	  1. List all files
//
//	Command:
//	  ls -a
//	┃ What do you want to do next?
//	┃ > Execute the command directly.
//
// Commands are highlighted with chroma. Descriptions are word-wrapped with a
// hanging indent.
//
// # Themes
//
// All styles derive from the active Theme. SetTheme regenerates the lipgloss
// styles and PromptTheme picks up the new colors the next time a form is
// built. Each theme also names the chroma style used for commands.
//
// # Progress
//
// StartSpinner animates a single line while a conversion is in flight. The
// returned stop function erases the line before returning, so nothing printed
// afterwards is interleaved with spinner frames.
package ui
