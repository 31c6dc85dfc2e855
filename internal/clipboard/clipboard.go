// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/chatsh/internal/errors"
	"github.com/zhubert/chatsh/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool
)

type clipboardBackend interface {
	Init() error
	Write(text []byte)
}

type systemBackend struct{}

func (systemBackend) Init() error { return clipboard.Init() }
func (systemBackend) Write(text []byte) { clipboard.Write(clipboard.FmtText, text) }

// current is swapped out in tests so they don't need a display server.
var current clipboardBackend = systemBackend{}

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}

	if err := current.Init(); err != nil {
		logger.Warn("Clipboard: Failed to initialize: %v", err)
		return errors.E(errors.Op("clipboard.Init"), errors.KindIO, err)
	}

	initialized = true
	logger.Debug("Clipboard: Initialized successfully")
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}

	current.Write([]byte(text))
	logger.Debug("Clipboard: Wrote %d bytes of text", len(text))
	return nil
}

// setBackend replaces the clipboard implementation and resets initialization.
func setBackend(b clipboardBackend) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := current
	current = b
	initialized = false
	return func() {
		mu.Lock()
		defer mu.Unlock()
		current = prev
		initialized = false
	}
}
