package integration

import (
	"errors"
	"testing"

	"github.com/joshuapare/arenakit/alloc"
)

// TestBumpLifecycle drives a bump arena end to end over each provider:
// place, read back, clear, reuse, release.
func TestBumpLifecycle(t *testing.T) {
	for _, tc := range providers {
		t.Run(tc.name, func(t *testing.T) {
			b, err := alloc.NewBumpIn(tc.prov, 64*1024, 64)
			if err != nil {
				t.Fatalf("NewBumpIn failed: %v", err)
			}

			// Place a mixed batch and keep the handles
			refs := make([]alloc.Ref[event], 0, 100)
			for i := range 100 {
				r, err := alloc.New(b, makeEvent(int64(i)))
				if err != nil {
					t.Fatalf("New failed at %d: %v", i, err)
				}
				refs = append(refs, r)
			}
			t.Logf("Placed %d events, cursor at %d/%d B", len(refs), b.Used(), b.Capacity())

			// Every handle must read back what was placed
			for i, r := range refs {
				if got := r.Get(); got != makeEvent(int64(i)) {
					t.Fatalf("Event %d read back wrong: %+v", i, got)
				}
			}

			// Clear rewinds the cursor without touching capacity
			used := b.Used()
			b.Clear()
			if b.Used() != 0 {
				t.Errorf("Clear should rewind the cursor, got %d", b.Used())
			}
			if b.Capacity() != 64*1024 {
				t.Errorf("Clear must not change capacity, got %d", b.Capacity())
			}

			// The region is immediately reusable
			r, err := alloc.New(b, makeEvent(999))
			if err != nil {
				t.Fatalf("New after clear failed: %v", err)
			}
			if got := r.Get().Seq; got != 999 {
				t.Errorf("Reused region read back Seq=%d", got)
			}
			t.Logf("Reused %d B after clear", used)

			// Release ends the lifecycle exactly once
			if err := b.Release(); err != nil {
				t.Fatalf("Release failed: %v", err)
			}
			if err := b.Release(); err != nil {
				t.Errorf("Second release should be a no-op, got %v", err)
			}
			if _, err := b.Alloc(8, 8); !errors.Is(err, alloc.ErrReleased) {
				t.Errorf("Alloc after release should fail with ErrReleased, got %v", err)
			}
		})
	}
}

// TestPoolLifecycle drives a pool end to end over each provider: fill,
// verify, partial drain, validate, refill, release.
func TestPoolLifecycle(t *testing.T) {
	const slots = 128

	for _, tc := range providers {
		t.Run(tc.name, func(t *testing.T) {
			p, err := alloc.NewPoolIn[event](tc.prov, slots)
			if err != nil {
				t.Fatalf("NewPoolIn failed: %v", err)
			}

			// Fill every slot
			refs := make([]alloc.Ref[event], 0, slots)
			for i := range slots {
				r, err := p.Alloc(makeEvent(int64(i)))
				if err != nil {
					t.Fatalf("Alloc failed at %d: %v", i, err)
				}
				refs = append(refs, r)
			}
			if p.Live() != slots {
				t.Fatalf("Expected %d live slots, got %d", slots, p.Live())
			}

			// Verify contents survived the fill
			for i, r := range refs {
				if got := r.Get(); got != makeEvent(int64(i)) {
					t.Fatalf("Slot %d read back wrong: %+v", i, got)
				}
			}

			// Free every other slot, then make sure the list stays coherent
			for i := 0; i < slots; i += 2 {
				if err := p.Free(refs[i]); err != nil {
					t.Fatalf("Free failed at %d: %v", i, err)
				}
			}
			if err := p.Validate(); err != nil {
				t.Fatalf("Free list corrupt after partial drain: %v", err)
			}
			if p.Live() != slots/2 {
				t.Errorf("Expected %d live after partial drain, got %d", slots/2, p.Live())
			}

			// Refill; survivors must be untouched
			for range slots / 2 {
				if _, err := p.Alloc(makeEvent(1000)); err != nil {
					t.Fatalf("Refill alloc failed: %v", err)
				}
			}
			for i := 1; i < slots; i += 2 {
				if got := refs[i].Get(); got != makeEvent(int64(i)) {
					t.Fatalf("Survivor %d disturbed by refill: %+v", i, got)
				}
			}

			if err := p.Validate(); err != nil {
				t.Fatalf("Free list corrupt after refill: %v", err)
			}
			t.Logf("Lifecycle complete: %d allocs, %d frees", p.Stats().Allocs, p.Stats().Frees)

			if err := p.Release(); err != nil {
				t.Fatalf("Release failed: %v", err)
			}
			if _, err := p.Alloc(makeEvent(0)); !errors.Is(err, alloc.ErrReleased) {
				t.Errorf("Alloc after release should fail with ErrReleased, got %v", err)
			}
		})
	}
}

// TestStackTypedScratch runs the documented scratch pattern: typed values,
// a mark, temporaries, a rewind, and survivors.
func TestStackTypedScratch(t *testing.T) {
	s := alloc.NewStack(4096)

	id, err := alloc.New(s, int32(42))
	if err != nil {
		t.Fatalf("New int32 failed: %v", err)
	}
	name, err := alloc.New(s, "persistent")
	if err != nil {
		t.Fatalf("New string failed: %v", err)
	}

	mark := s.Mark()
	for i := range 32 {
		if _, err := alloc.New(s, makeEvent(int64(i))); err != nil {
			t.Fatalf("Temporary %d failed: %v", i, err)
		}
	}
	if s.Used() <= mark {
		t.Fatal("Temporaries should advance the cursor")
	}

	if err := s.Shrink(mark); err != nil {
		t.Fatalf("Shrink failed: %v", err)
	}
	if s.Used() != mark {
		t.Errorf("Cursor should rewind exactly to the mark, got %d want %d", s.Used(), mark)
	}

	if id.Get() != 42 || name.Get() != "persistent" {
		t.Error("Values below the mark must survive the rewind")
	}
}
