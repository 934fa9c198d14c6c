package align

import "testing"

func TestUp(t *testing.T) {
	cases := []struct {
		n, a, want uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{7, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{1, 1, 1},
		{5, 1, 5},
		{1, 4096, 4096},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
	}
	for _, c := range cases {
		if got := Up(c.n, c.a); got != c.want {
			t.Fatalf("Up(%d, %d) = %d, want %d", c.n, c.a, got, c.want)
		}
	}
}

func TestPad(t *testing.T) {
	cases := []struct {
		addr, a, want uintptr
	}{
		{0, 8, 0},
		{16, 8, 0},
		{17, 8, 7},
		{23, 8, 1},
		{24, 8, 0},
		{100, 16, 12},
	}
	for _, c := range cases {
		if got := Pad(c.addr, c.a); got != c.want {
			t.Fatalf("Pad(%d, %d) = %d, want %d", c.addr, c.a, got, c.want)
		}
	}
	for addr := uintptr(0); addr < 64; addr++ {
		pad := Pad(addr, 8)
		if pad >= 8 {
			t.Fatalf("Pad(%d, 8) = %d, want < 8", addr, pad)
		}
		if (addr+pad)%8 != 0 {
			t.Fatalf("addr %d + pad %d not 8-aligned", addr, pad)
		}
	}
}

func TestIsPow2(t *testing.T) {
	for _, a := range []uintptr{1, 2, 4, 8, 16, 1024, 4096} {
		if !IsPow2(a) {
			t.Fatalf("IsPow2(%d) = false, want true", a)
		}
	}
	for _, a := range []uintptr{0, 3, 6, 12, 100, 4095} {
		if IsPow2(a) {
			t.Fatalf("IsPow2(%d) = true, want false", a)
		}
	}
}
