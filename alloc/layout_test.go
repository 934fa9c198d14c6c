package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLayout_Validation: every invalid size/alignment pair is rejected
// at construction, none mid-use.
func TestNewLayout_Validation(t *testing.T) {
	cases := []struct {
		name        string
		size, align uintptr
		ok          bool
	}{
		{"zero size", 0, 8, false},
		{"zero align", 8, 0, false},
		{"non-power-of-two align", 8, 3, false},
		{"align past one page", 8, 8192, false},
		{"size overflows when aligned", ^uintptr(0) - 2, 8, false},
		{"minimal", 1, 1, true},
		{"typical", 4096, 8, true},
		{"page aligned", 1 << 20, 4096, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, err := NewLayout(c.size, c.align)
			if !c.ok {
				require.ErrorIs(t, err, ErrBadLayout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.size, l.Size)
			assert.Equal(t, c.align, l.Align)
		})
	}
}

// TestLayout_Padded rounds the size up to the alignment.
func TestLayout_Padded(t *testing.T) {
	l, err := NewLayout(10, 8)
	require.NoError(t, err)
	assert.Equal(t, uintptr(16), l.Padded())

	l, err = NewLayout(16, 8)
	require.NoError(t, err)
	assert.Equal(t, uintptr(16), l.Padded())
}
