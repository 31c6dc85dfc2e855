package ui

import (
	"io"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	"github.com/charmbracelet/x/ansi"
)

// progressSpinner is the frame set used while waiting on a conversion.
var progressSpinner = spinner.MiniDot

// StartSpinner draws an animated progress line on w until the returned stop
// function is called. Stop erases the line and is safe to call more than once.
func StartSpinner(w io.Writer, label string) (stop func()) {
	return startSpinner(w, label, progressSpinner)
}

func startSpinner(w io.Writer, label string, s spinner.Spinner) func() {
	quit := make(chan struct{})
	done := make(chan struct{})

	fps := s.FPS
	if fps <= 0 {
		fps = time.Second / 10
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(fps)
		defer ticker.Stop()

		frame := 0
		draw := func() {
			f := s.Frames[frame%len(s.Frames)]
			_, _ = io.WriteString(w, "\r"+SpinnerStyle.Render(f)+" "+SpinnerLabelStyle.Render(label))
			frame++
		}

		draw()
		for {
			select {
			case <-quit:
				_, _ = io.WriteString(w, ansi.EraseEntireLine+"\r")
				return
			case <-ticker.C:
				draw()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(quit)
			<-done
		})
	}
}
