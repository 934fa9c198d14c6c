package main

import (
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/arenakit/alloc"
)

// Pane represents which pane is focused
type Pane int

const (
	PoolPane Pane = iota
	FramePane
)

// Layout constants
const (
	SlotGridCols = 16 // Slots rendered per grid row
)

// Defaults for the allocators backing the view
const (
	DefaultSlots    = 64
	DefaultFrameCap = 4096
)

// particle is the payload type held by the pool pane's slots.
type particle struct {
	X, Y   float64
	VX, VY float64
	TTL    int32
}

// Model is the main application model
type Model struct {
	pool   *alloc.Pool[particle]
	frames *alloc.DoubleBump

	// refs mirrors the pool slot-for-slot so the selected slot can be
	// freed and inspected. Index == slot index.
	refs []alloc.Ref[particle]

	rng  *rand.Rand
	keys KeyMap

	focusedPane Pane
	cursor      int // Selected slot in the pool grid
	width       int
	height      int

	// Slot detail modal
	detail slotDetailModel

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	err error
}

// NewModel creates a new TUI model over a fresh pool and frame arena.
// Construction failures are carried in the model and rendered by View.
func NewModel(slots int, frameCap uintptr) Model {
	m := Model{
		rng:         rand.New(rand.NewSource(42)),
		keys:        DefaultKeyMap(),
		focusedPane: PoolPane,
	}

	pool, err := alloc.NewPool[particle](slots)
	if err != nil {
		m.err = err
		return m
	}

	frames, err := alloc.NewDoubleBump(frameCap, 8)
	if err != nil {
		_ = pool.Release()
		m.err = err
		return m
	}

	m.pool = pool
	m.frames = frames
	m.refs = make([]alloc.Ref[particle], slots)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the allocators held by the model.
// Should be called when the TUI exits.
func (m *Model) Close() error {
	var lastErr error

	if m.pool != nil {
		if err := m.pool.Release(); err != nil {
			lastErr = err
		}
		m.pool = nil
	}

	if m.frames != nil {
		if err := m.frames.Release(); err != nil {
			lastErr = err
		}
		m.frames = nil
	}

	return lastErr
}

// randomParticle draws plausible payload values for a fresh slot.
func (m Model) randomParticle() particle {
	return particle{
		X:   m.rng.Float64() * 100,
		Y:   m.rng.Float64() * 100,
		VX:  m.rng.Float64()*2 - 1,
		VY:  m.rng.Float64()*2 - 1,
		TTL: int32(m.rng.Intn(300) + 1),
	}
}

// Messages

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type clearStatusMsg struct{}
