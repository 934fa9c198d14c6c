package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/cmd/arenaview/logger"
)

// handleAllocate takes a slot from the pool and parks the cursor on it,
// making the free-list reuse order visible.
func (m Model) handleAllocate() (tea.Model, tea.Cmd) {
	r, err := m.pool.Alloc(m.randomParticle())
	if err != nil {
		if errors.Is(err, alloc.ErrPoolFull) {
			m.statusMessage = fmt.Sprintf("pool full: all %d slots live", m.pool.Slots())
			return m, nil
		}
		m.err = err
		return m, nil
	}

	slot, err := m.pool.SlotOf(r)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.refs[slot] = r
	m.cursor = slot
	m.statusMessage = fmt.Sprintf("allocated slot %d", slot)
	logger.Debug("slot allocated", "slot", slot, "live", m.pool.Live())
	return m, nil
}

// handleFreeSelected returns the slot under the cursor to the free list.
func (m Model) handleFreeSelected() (tea.Model, tea.Cmd) {
	if !m.pool.LiveAt(m.cursor) {
		m.statusMessage = fmt.Sprintf("slot %d is already free", m.cursor)
		return m, nil
	}

	if err := m.pool.Free(m.refs[m.cursor]); err != nil {
		m.err = err
		return m, nil
	}
	m.refs[m.cursor] = alloc.Ref[particle]{}
	m.statusMessage = fmt.Sprintf("freed slot %d", m.cursor)
	logger.Debug("slot freed", "slot", m.cursor, "live", m.pool.Live())
	return m, nil
}

// handleDrain frees every live slot in index order.
func (m Model) handleDrain() (tea.Model, tea.Cmd) {
	freed := 0
	for i := range m.refs {
		if !m.pool.LiveAt(i) {
			continue
		}
		if err := m.pool.Free(m.refs[i]); err != nil {
			m.err = err
			return m, nil
		}
		m.refs[i] = alloc.Ref[particle]{}
		freed++
	}
	m.statusMessage = fmt.Sprintf("drained %d slots", freed)
	logger.Debug("pool drained", "freed", freed)
	return m, nil
}

// handleValidate walks the free list and reports its integrity.
func (m Model) handleValidate() (tea.Model, tea.Cmd) {
	if err := m.pool.Validate(); err != nil {
		m.statusMessage = fmt.Sprintf("validate: %v", err)
		return m, nil
	}
	free := m.pool.Slots() - m.pool.Live()
	m.statusMessage = fmt.Sprintf("free list clean (%d free)", free)
	return m, m.expireStatus()
}

// handlePush places a particle onto the active frame arena.
func (m Model) handlePush() (tea.Model, tea.Cmd) {
	if _, err := alloc.New(m.frames, m.randomParticle()); err != nil {
		if errors.Is(err, alloc.ErrNoSpace) {
			m.statusMessage = fmt.Sprintf("frame arena full at %d/%d B (c to clear)",
				m.frames.Used(), m.frames.Capacity())
			return m, nil
		}
		m.err = err
		return m, nil
	}
	m.statusMessage = fmt.Sprintf("pushed particle, cursor at %d/%d B",
		m.frames.Used(), m.frames.Capacity())
	return m, nil
}

// handleSwap flips the active frame buffer.
func (m Model) handleSwap() (tea.Model, tea.Cmd) {
	m.frames.Swap()
	m.statusMessage = fmt.Sprintf("swapped to buffer %s", m.activeBufferName())
	logger.Debug("frame buffers swapped", "used", m.frames.Used())
	return m, nil
}

// handleClear rewinds the active frame buffer.
func (m Model) handleClear() (tea.Model, tea.Cmd) {
	m.frames.Clear()
	m.statusMessage = fmt.Sprintf("cleared buffer %s", m.activeBufferName())
	return m, nil
}

// handleCopyFingerprint copies the focused pane's fingerprint to the clipboard.
func (m Model) handleCopyFingerprint() (tea.Model, tea.Cmd) {
	var label string
	var fp uint64
	if m.focusedPane == PoolPane {
		label, fp = "pool", m.pool.Fingerprint()
	} else {
		label, fp = "frame", m.frames.Fingerprint()
	}

	if err := clipboard.WriteAll(fmt.Sprintf("%#016x", fp)); err != nil {
		m.statusMessage = fmt.Sprintf("clipboard unavailable: %v", err)
		return m, nil
	}
	m.statusMessage = fmt.Sprintf("Copied %s fingerprint %#016x", label, fp)
	return m, m.expireStatus()
}

// handleOpenDetail opens the modal for the slot under the cursor.
func (m Model) handleOpenDetail() (tea.Model, tea.Cmd) {
	live := m.pool.LiveAt(m.cursor)

	var addr string
	var value particle
	if live {
		r := m.refs[m.cursor]
		addr = fmt.Sprintf("%p", r.Ptr())
		value = r.Get()
	}

	m.detail.Show(m.cursor, live, addr, m.pool.SlotSize(), value)
	return m, nil
}

// activeBufferName labels the double bump's selector for display.
func (m Model) activeBufferName() string {
	if m.frames.ActiveIndex() == 0 {
		return "A"
	}
	return "B"
}

// expireStatus schedules the status line to clear itself.
func (m Model) expireStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
