package sszhash

import "testing"

func TestZeroHashTableRecurrence(t *testing.T) {
	if ZeroHash(0) != (Chunk{}) {
		t.Fatalf("ZeroHash(0) must be the all-zero chunk")
	}
	for d := 0; d < 10; d++ {
		want := Hash(ZeroHash(d), ZeroHash(d))
		got := ZeroHash(d + 1)
		if got != want {
			t.Errorf("ZeroHash(%d) = %x, want %x", d+1, got, want)
		}
	}
}

func TestZeroHashClampsDepth(t *testing.T) {
	if ZeroHash(-1) != ZeroHash(0) {
		t.Errorf("ZeroHash(-1) should clamp to depth 0")
	}
	if ZeroHash(MaxDepth+5) != ZeroHash(MaxDepth) {
		t.Errorf("ZeroHash(MaxDepth+5) should clamp to MaxDepth")
	}
}

func TestHashDeterministic(t *testing.T) {
	a := Uint256LE(1)
	b := Uint256LE(2)
	h1 := Hash(a, b)
	h2 := Hash(a, b)
	if h1 != h2 {
		t.Errorf("Hash is not deterministic: %x != %x", h1, h2)
	}
	if h1 == Hash(b, a) {
		t.Errorf("Hash(a,b) should differ from Hash(b,a)")
	}
}

func TestUint256LERoundTripsLowBytes(t *testing.T) {
	c := Uint256LE(0x0102030405060708)
	want := [8]byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	for i, b := range want {
		if c[i] != b {
			t.Errorf("byte %d = %#x, want %#x", i, c[i], b)
		}
	}
	for i := 8; i < 32; i++ {
		if c[i] != 0 {
			t.Errorf("byte %d should be zero padding, got %#x", i, c[i])
		}
	}
}

func TestMixInLengthChangesWithLength(t *testing.T) {
	root := Uint256LE(42)
	a := MixInLength(root, 1)
	b := MixInLength(root, 2)
	if a == b {
		t.Errorf("MixInLength must be sensitive to length")
	}
}
