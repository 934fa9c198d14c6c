package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// slotDetailModel renders one pool slot as a modal overlay.
type slotDetailModel struct {
	visible bool

	slot     int
	live     bool
	addr     string
	slotSize uintptr
	value    particle
}

// Show populates the modal with one slot's state and makes it visible.
func (d *slotDetailModel) Show(slot int, live bool, addr string, slotSize uintptr, value particle) {
	d.slot = slot
	d.live = live
	d.addr = addr
	d.slotSize = slotSize
	d.value = value
	d.visible = true
}

// Hide dismisses the modal.
func (d *slotDetailModel) Hide() {
	d.visible = false
}

// IsVisible reports whether the modal should be rendered.
func (d *slotDetailModel) IsVisible() bool {
	return d.visible
}

func (d *slotDetailModel) Init() tea.Cmd {
	return nil
}

func (d *slotDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Dismissal is handled by the parent Model's Update
	return d, nil
}

func (d *slotDetailModel) View() string {
	var b strings.Builder

	b.WriteString(modalTitleStyle.Render(fmt.Sprintf("Slot %d", d.slot)))
	b.WriteString("\n")

	state := "free"
	if d.live {
		state = "live"
	}
	b.WriteString(fmt.Sprintf("%s %s\n", statLabelStyle.Render("state:"), statValueStyle.Render(state)))
	b.WriteString(fmt.Sprintf("%s %s\n", statLabelStyle.Render("cell: "), statValueStyle.Render(fmt.Sprintf("%d B", d.slotSize))))

	if d.live {
		b.WriteString(fmt.Sprintf("%s %s\n", statLabelStyle.Render("addr: "), statValueStyle.Render(d.addr)))
		b.WriteString(fmt.Sprintf("%s %s\n", statLabelStyle.Render("pos:  "),
			statValueStyle.Render(fmt.Sprintf("(%.1f, %.1f)", d.value.X, d.value.Y))))
		b.WriteString(fmt.Sprintf("%s %s\n", statLabelStyle.Render("vel:  "),
			statValueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", d.value.VX, d.value.VY))))
		b.WriteString(fmt.Sprintf("%s %s\n", statLabelStyle.Render("ttl:  "),
			statValueStyle.Render(fmt.Sprintf("%d", d.value.TTL))))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc to close"))

	return modalStyle.Render(b.String())
}
