package cli

import (
	"sync"

	"golang.design/x/clipboard"

	"github.com/phroun/vramcon/internal/log"
)

// Keys handled by the view; everything else is ignored.
const (
	keyCtrlC = 0x03
	keyQuit  = 'q'
	keyCopy  = 'c'
)

// InputHandler reads keys from the host terminal
type InputHandler struct {
	term *Terminal

	clipOnce sync.Once
	clipErr  error
}

// NewInputHandler creates a new input handler
func NewInputHandler(term *Terminal) *InputHandler {
	return &InputHandler{term: term}
}

// InputLoop reads and processes input until the view stops
func (h *InputHandler) InputLoop() {
	buf := make([]byte, 64)

	for {
		select {
		case <-h.term.stopRender:
			return
		default:
		}

		n, err := h.term.options.Input.Read(buf)
		if err != nil {
			h.term.quit()
			return
		}
		if h.processInput(buf[:n]) {
			return
		}
	}
}

// processInput handles raw key bytes and reports whether the user quit
func (h *InputHandler) processInput(data []byte) bool {
	for _, b := range data {
		switch b {
		case keyCtrlC, keyQuit:
			h.term.quit()
			return true
		case keyCopy:
			h.copyScreen()
		}
	}
	return false
}

// copyScreen puts the visible text on the system clipboard
func (h *InputHandler) copyScreen() {
	h.clipOnce.Do(func() {
		h.clipErr = clipboard.Init()
	})
	if h.clipErr != nil {
		log.Warn("cli: clipboard unavailable: %v", h.clipErr)
		return
	}
	snap := h.term.console.Snapshot()
	clipboard.Write(clipboard.FmtText, []byte(snap.Text()))
	log.Debug("cli: copied screen to clipboard")
}
