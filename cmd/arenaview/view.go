package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	// If help overlay is showing, render it
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	// If the slot detail modal is visible, render it over the main view
	if m.detail.IsVisible() {
		mainView := NewMainViewModel(&m)
		detailOverlay := overlay.New(
			&m.detail,
			mainView,
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		)
		return detailOverlay.View()
	}

	header := m.renderHeader()
	content := m.renderContent()
	status := m.renderStatus()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		status,
	)
}

// renderHeader renders the title and the allocator geometry
func (m Model) renderHeader() string {
	title := "Arena Explorer"
	geometry := fmt.Sprintf("pool: %d slots × %d B   frames: 2 × %d B",
		m.pool.Slots(), m.pool.SlotSize(), m.frames.Capacity())

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render(title),
		lipgloss.NewStyle().Render("  "),
		summaryStyle.Render(geometry),
	)
}

// renderContent renders the split-pane content
func (m Model) renderContent() string {
	// Calculate pane widths (50-50 split)
	poolWidth := max(m.width/2, 40)
	frameWidth := max(m.width-poolWidth, 40)

	poolBox := m.renderPoolPane(poolWidth)
	frameBox := m.renderFramePane(frameWidth)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		poolBox,
		frameBox,
	)
}

// renderPoolPane renders the slot-occupancy grid with the pool's counters
func (m Model) renderPoolPane(width int) string {
	title := fmt.Sprintf("Slots (%d/%d live)", m.pool.Live(), m.pool.Slots())

	var body strings.Builder
	body.WriteString(m.renderSlotGrid())
	body.WriteString("\n")

	st := m.pool.Stats()
	body.WriteString(statLabelStyle.Render("allocs "))
	body.WriteString(statValueStyle.Render(fmt.Sprintf("%d", st.Allocs)))
	body.WriteString(statLabelStyle.Render("  frees "))
	body.WriteString(statValueStyle.Render(fmt.Sprintf("%d", st.Frees)))
	if st.Fails > 0 {
		body.WriteString(statLabelStyle.Render("  refused "))
		body.WriteString(refusedStyle.Render(fmt.Sprintf("%d", st.Fails)))
	}
	body.WriteString("\n")
	body.WriteString(statLabelStyle.Render("used   "))
	body.WriteString(statValueStyle.Render(fmt.Sprintf("%d/%d B", st.Used, st.Capacity)))
	body.WriteString("\n")
	body.WriteString(statLabelStyle.Render("digest "))
	body.WriteString(statValueStyle.Render(fmt.Sprintf("%#016x", m.pool.Fingerprint())))

	style := paneStyle
	if m.focusedPane == PoolPane {
		style = activePaneStyle
	}
	return style.
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body.String()))
}

// renderSlotGrid renders one glyph per slot, the cursor slot highlighted
func (m Model) renderSlotGrid() string {
	var grid strings.Builder

	for i := 0; i < m.pool.Slots(); i++ {
		glyph := freeSlotGlyph
		style := freeSlotStyle
		if m.pool.LiveAt(i) {
			glyph = liveSlotGlyph
			style = liveSlotStyle
		}
		if i == m.cursor {
			style = cursorSlotStyle
		}
		grid.WriteString(style.Render(glyph))

		if (i+1)%SlotGridCols == 0 {
			grid.WriteString("\n")
		} else {
			grid.WriteString(" ")
		}
	}

	return grid.String()
}

// renderFramePane renders the active frame arena's cursor gauge and counters
func (m Model) renderFramePane(width int) string {
	title := fmt.Sprintf("Frame arena (buffer %s active)", m.activeBufferName())

	var body strings.Builder
	body.WriteString(m.renderGauge(max(width-8, 10)))
	body.WriteString("\n")

	st := m.frames.Stats()
	body.WriteString(statLabelStyle.Render("cursor "))
	body.WriteString(statValueStyle.Render(fmt.Sprintf("%d/%d B", st.Used, st.Capacity)))
	body.WriteString("\n")
	body.WriteString(statLabelStyle.Render("allocs "))
	body.WriteString(statValueStyle.Render(fmt.Sprintf("%d", st.Allocs)))
	body.WriteString(statLabelStyle.Render("  clears "))
	body.WriteString(statValueStyle.Render(fmt.Sprintf("%d", st.Clears)))
	if st.Fails > 0 {
		body.WriteString(statLabelStyle.Render("  refused "))
		body.WriteString(refusedStyle.Render(fmt.Sprintf("%d", st.Fails)))
	}
	body.WriteString("\n")
	body.WriteString(statLabelStyle.Render("digest "))
	body.WriteString(statValueStyle.Render(fmt.Sprintf("%#016x", m.frames.Fingerprint())))

	style := paneStyle
	if m.focusedPane == FramePane {
		style = activePaneStyle
	}
	return style.
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body.String()))
}

// renderGauge renders the active arena's cursor as a proportional bar
func (m Model) renderGauge(width int) string {
	capacity := m.frames.Capacity()
	used := m.frames.Used()

	filled := 0
	if capacity > 0 {
		filled = int(used * uintptr(width) / capacity)
	}
	if filled > width {
		filled = width
	}

	return "[" +
		gaugeFillStyle.Render(strings.Repeat("#", filled)) +
		gaugeEmptyStyle.Render(strings.Repeat("·", width-filled)) +
		"]"
}

// renderStatus renders the status bar with help text
func (m Model) renderStatus() string {
	// Show status message if set (takes priority over normal help)
	if m.statusMessage != "" {
		return statusStyle.Width(m.width).Render(
			helpStyle.Render(truncate(m.statusMessage, max(m.width-4, 20))),
		)
	}

	// Build help text based on the focused pane
	var help strings.Builder

	switch m.focusedPane {
	case PoolPane:
		help.WriteString(helpStyle.Render("↑↓←→: Select"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("a: Alloc"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("f: Free"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("Enter: Detail"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("V: Validate"))
	default: // FramePane
		help.WriteString(helpStyle.Render("b: Push"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("s: Swap"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("c: Clear"))
	}
	help.WriteString(" │ ")
	help.WriteString(helpStyle.Render("Tab: Pane"))
	help.WriteString(" │ ")
	help.WriteString(helpStyle.Render("?: Help"))
	help.WriteString(" │ ")
	help.WriteString(helpStyle.Render("q: Quit"))

	// Status line with counts
	var statsBuilder strings.Builder
	statsBuilder.WriteString(statValueStyle.Render(fmt.Sprintf("%d", m.pool.Live())))
	statsBuilder.WriteString(" live │ ")
	statsBuilder.WriteString(statValueStyle.Render(fmt.Sprintf("%d B", m.frames.Used())))
	statsBuilder.WriteString(" framed")

	statusLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		help.String(),
		lipgloss.NewStyle().Width(10).Render(""), // Spacer
		statsBuilder.String(),
	)

	return statusStyle.
		Width(m.width).
		Render(statusLine)
}

// renderHelpOverlay renders the help overlay
func (m Model) renderHelpOverlay() string {
	var helpContent strings.Builder

	title := helpTitleStyle.Render("Keyboard Shortcuts")
	helpContent.WriteString(title)
	helpContent.WriteString("\n\n")

	// Key column width for alignment
	const keyWidth = 14

	// Navigation section
	helpContent.WriteString(modalTitleStyle.Render("Navigation"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("↑/↓ or k/j"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Move between grid rows"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("←/→ or h/l"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Move along a grid row"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Home or g"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("First slot"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("End or G"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Last slot"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Tab"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Switch between pool and frame panes"))
	helpContent.WriteString("\n\n")

	// Pool section
	helpContent.WriteString(modalTitleStyle.Render("Pool"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("a"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Allocate a slot (cursor follows the free list)"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("f"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Free the selected slot"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("D"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Free every live slot"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("V"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Check free-list integrity"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Enter"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Inspect the selected slot"))
	helpContent.WriteString("\n\n")

	// Frame arena section
	helpContent.WriteString(modalTitleStyle.Render("Frame Arena"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("b"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Push a particle onto the active buffer"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("s"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Swap the active buffer"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("c"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Clear (rewind) the active buffer"))
	helpContent.WriteString("\n\n")

	// General section
	helpContent.WriteString(modalTitleStyle.Render("General"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("y"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Copy the focused pane's fingerprint"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Esc"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Close help or clear the status line"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("q or Ctrl+C"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Quit"))
	helpContent.WriteString("\n\n")

	helpContent.WriteString(helpStyle.Render("Press ?, Esc, or q to close"))

	return modalStyle.Render(helpContent.String())
}
