// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/chatsh/internal/errors"
	"github.com/zhubert/chatsh/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "chatsh"

// maxCommandLen bounds the display width of a command in a notification body.
const maxCommandLen = 60

// notifier sends the notification. Tests replace it to avoid real popups.
var notifier = beeep.Notify

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the beeep notifier.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.ComponentLogger("Notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon lets beeep pick the platform default
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// CommandFinished reports the outcome of an executed command.
func CommandFinished(command string, err error) error {
	return Send(AppName, commandMessage(command, err))
}

func commandMessage(command string, err error) string {
	shown := truncate(command, maxCommandLen)
	if err == nil {
		return fmt.Sprintf("%s finished", shown)
	}
	if code, ok := errors.ExitCode(err); ok {
		return fmt.Sprintf("%s failed with exit code %d", shown, code)
	}
	if sig, ok := errors.ExitSignal(err); ok {
		return fmt.Sprintf("%s terminated by signal: %s", shown, sig)
	}
	return fmt.Sprintf("%s failed", shown)
}

// truncate shortens s to at most n terminal columns.
func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}
