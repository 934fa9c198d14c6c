package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/arenakit/cmd/arenaview/logger"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// On a construction error only quit works
		if m.err != nil {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		// If help is showing, handle help keys
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
				return m, nil
			}
			// Ignore other keys when help is showing
			return m, nil
		}

		// If the slot detail modal is open, handle its keys
		if m.detail.IsVisible() {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Enter) {
				m.detail.Hide()
				return m, nil
			}
			// Still allow quit
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			// Ignore other keys when the modal is open
			return m, nil
		}

		// Global keys
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		// Show help overlay
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = true
			return m, nil
		}

		// Switch panes
		if key.Matches(msg, m.keys.Tab) {
			if m.focusedPane == PoolPane {
				m.focusedPane = FramePane
			} else {
				m.focusedPane = PoolPane
			}
			return m, nil
		}

		// Clear status (Esc in normal mode)
		if key.Matches(msg, m.keys.Esc) && m.statusMessage != "" {
			m.statusMessage = ""
			return m, nil
		}

		// Pool commands
		if key.Matches(msg, m.keys.Allocate) {
			return m.handleAllocate()
		}
		if key.Matches(msg, m.keys.Free) {
			return m.handleFreeSelected()
		}
		if key.Matches(msg, m.keys.Drain) {
			return m.handleDrain()
		}
		if key.Matches(msg, m.keys.Validate) {
			return m.handleValidate()
		}

		// Frame commands
		if key.Matches(msg, m.keys.Push) {
			return m.handlePush()
		}
		if key.Matches(msg, m.keys.Swap) {
			return m.handleSwap()
		}
		if key.Matches(msg, m.keys.Clear) {
			return m.handleClear()
		}

		// Copy fingerprint of the focused pane
		if key.Matches(msg, m.keys.Copy) {
			return m.handleCopyFingerprint()
		}

		// Slot detail modal
		if key.Matches(msg, m.keys.Enter) && m.focusedPane == PoolPane {
			return m.handleOpenDetail()
		}

		// Grid navigation (pool pane only)
		if m.focusedPane == PoolPane {
			switch {
			case key.Matches(msg, m.keys.Up):
				return m.moveCursor(-SlotGridCols), nil
			case key.Matches(msg, m.keys.Down):
				return m.moveCursor(SlotGridCols), nil
			case key.Matches(msg, m.keys.Left):
				return m.moveCursor(-1), nil
			case key.Matches(msg, m.keys.Right):
				return m.moveCursor(1), nil
			case key.Matches(msg, m.keys.Home):
				m.cursor = 0
				return m, nil
			case key.Matches(msg, m.keys.End):
				m.cursor = m.pool.Slots() - 1
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logger.Debug("window resized", "width", m.width, "height", m.height)
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// moveCursor shifts the pool grid cursor by delta, clamped to the slot range.
func (m Model) moveCursor(delta int) Model {
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if last := m.pool.Slots() - 1; next > last {
		next = last
	}
	m.cursor = next
	return m
}
