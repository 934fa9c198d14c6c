package main

import (
	"strings"
	"testing"
)

// TestPushAdvancesCursor tests 'b' placing particles onto the active buffer
func TestPushAdvancesCursor(t *testing.T) {
	helper := NewTestHelper(8, 4096)
	defer helper.Close()
	helper.SendWindowSize(120, 40)

	if helper.FrameUsed() != 0 {
		t.Fatal("The frame arena should start empty")
	}

	t.Log("Pushing one particle")
	helper.SendKeyRune('b')

	used := helper.FrameUsed()
	if used == 0 {
		t.Fatal("The cursor should advance after a push")
	}

	t.Log("Pushing a second particle")
	helper.SendKeyRune('b')

	if helper.FrameUsed() != 2*used {
		t.Errorf("Two equal pushes should use twice the bytes, got %d after %d", helper.FrameUsed(), used)
	}

	model := helper.GetModel()
	if !strings.Contains(model.statusMessage, "pushed particle") {
		t.Errorf("Status should report the push, got %q", model.statusMessage)
	}

	t.Log("✓ Push advances the active cursor")
}

// TestSwapPreservesInactiveBuffer tests 's' flipping buffers without
// touching their contents
func TestSwapPreservesInactiveBuffer(t *testing.T) {
	helper := NewTestHelper(8, 4096)
	defer helper.Close()
	helper.SendWindowSize(120, 40)

	helper.SendKeyRune('b')
	helper.SendKeyRune('b')
	usedA := helper.FrameUsed()
	if usedA == 0 {
		t.Fatal("Setup failed: buffer A should hold data")
	}

	t.Log("Swapping to buffer B")
	helper.SendKeyRune('s')

	model := helper.GetModel()
	if !strings.Contains(model.statusMessage, "swapped to buffer B") {
		t.Errorf("Status should name the new buffer, got %q", model.statusMessage)
	}
	if helper.FrameUsed() != 0 {
		t.Errorf("Buffer B should start empty, got %d B", helper.FrameUsed())
	}

	t.Log("Pushing onto B, then swapping back to A")
	helper.SendKeyRune('b')
	helper.SendKeyRune('s')

	if helper.FrameUsed() != usedA {
		t.Errorf("Buffer A should be untouched by the round trip, want %d B, got %d B", usedA, helper.FrameUsed())
	}

	t.Log("✓ Swap preserves the inactive buffer")
}

// TestClearRewindsActiveBuffer tests 'c' resetting only the active cursor
func TestClearRewindsActiveBuffer(t *testing.T) {
	helper := NewTestHelper(8, 4096)
	defer helper.Close()
	helper.SendWindowSize(120, 40)

	helper.SendKeyRune('b')
	helper.SendKeyRune('b')
	if helper.FrameUsed() == 0 {
		t.Fatal("Setup failed: the active buffer should hold data")
	}

	t.Log("Clearing the active buffer")
	helper.SendKeyRune('c')

	if helper.FrameUsed() != 0 {
		t.Errorf("Clear should rewind the cursor, got %d B", helper.FrameUsed())
	}

	model := helper.GetModel()
	if !strings.Contains(model.statusMessage, "cleared buffer A") {
		t.Errorf("Status should name the cleared buffer, got %q", model.statusMessage)
	}

	t.Log("✓ Clear rewinds the active buffer")
}

// TestFrameExhaustionFeedback tests a full frame arena staying recoverable
func TestFrameExhaustionFeedback(t *testing.T) {
	helper := NewTestHelper(8, 64)
	defer helper.Close()
	helper.SendWindowSize(120, 40)

	t.Log("Pushing until the tiny arena refuses")
	for range 4 {
		helper.SendKeyRune('b')
	}

	model := helper.GetModel()
	if model.err != nil {
		t.Fatalf("Exhaustion must stay recoverable, got error %v", model.err)
	}
	if !strings.Contains(model.statusMessage, "frame arena full") {
		t.Errorf("Status should report the full arena, got %q", model.statusMessage)
	}

	t.Log("Clearing makes room again")
	helper.SendKeyRune('c')
	helper.SendKeyRune('b')

	if helper.FrameUsed() == 0 {
		t.Error("A push should succeed after clearing")
	}

	t.Log("✓ Frame exhaustion is reported and recoverable")
}

// TestCopyFingerprint tests 'y' reporting through the status line
func TestCopyFingerprint(t *testing.T) {
	helper := NewTestHelper(8, 1024)
	defer helper.Close()
	helper.SendWindowSize(120, 40)

	t.Log("Copying the pool fingerprint")
	helper.SendKeyRune('y')

	model := helper.GetModel()
	// The clipboard may be unavailable in test environments; either way
	// the status line must say what happened
	if model.statusMessage == "" {
		t.Error("Copy should always report through the status line")
	}

	t.Log("✓ Copy fingerprint reports its outcome")
}
