package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	model Model
}

// NewTestHelper creates a test helper with a model over small allocators
func NewTestHelper(slots int, frameCap uintptr) *TestHelper {
	return &TestHelper{
		model: NewModel(slots, frameCap),
	}
}

// SendKey simulates a key press
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	msg := tea.KeyMsg{Type: keyType}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	msg := tea.WindowSizeMsg{Width: width, Height: height}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// GetFocusedPane returns the currently focused pane
func (h *TestHelper) GetFocusedPane() Pane {
	return h.model.focusedPane
}

// GetCursor returns the pool grid cursor position
func (h *TestHelper) GetCursor() int {
	return h.model.cursor
}

// LiveCount returns the pool's live slot count
func (h *TestHelper) LiveCount() int {
	return h.model.pool.Live()
}

// FrameUsed returns the active frame arena's cursor position
func (h *TestHelper) FrameUsed() uintptr {
	return h.model.frames.Used()
}

// Close releases the model's allocators
func (h *TestHelper) Close() error {
	return h.model.Close()
}
