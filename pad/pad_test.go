package pad

import "testing"

func TestStrobeSnapshotsOnHighThenLatchesOnFallingEdge(t *testing.T) {
	pressed := uint8(A | Start)
	p := New(func() uint8 { return pressed })

	p.StrobeWrite(1)
	p.StrobeWrite(0)

	var got uint8
	for i := 0; i < 8; i++ {
		got |= p.SerialRead() << i
	}
	if got != pressed {
		t.Fatalf("serial read reassembled %#02x, want %#02x", got, pressed)
	}
}

func TestReadOrderIsAThenBThenSelectThenStart(t *testing.T) {
	p := New(func() uint8 { return A })
	p.StrobeWrite(1)
	p.StrobeWrite(0)

	if got := p.SerialRead(); got != 1 {
		t.Fatalf("first bit (A) = %d, want 1", got)
	}
	if got := p.SerialRead(); got != 0 {
		t.Fatalf("second bit (B) = %d, want 0", got)
	}
}

func TestReadsPastBit7Return1(t *testing.T) {
	p := New(func() uint8 { return 0 })
	p.StrobeWrite(1)
	p.StrobeWrite(0)
	for i := 0; i < 8; i++ {
		p.SerialRead()
	}
	if got := p.SerialRead(); got != 1 {
		t.Fatalf("read past bit 7 = %d, want 1", got)
	}
}

func TestHeldStrobeResnapshotsEachWrite(t *testing.T) {
	pressed := uint8(0)
	p := New(func() uint8 { return pressed })
	p.StrobeWrite(1)
	pressed = B
	p.StrobeWrite(1) // still strobing: should reload from current state
	p.StrobeWrite(0)
	if got := p.SerialRead(); got != 0 {
		t.Fatalf("bit 0 (A) = %d, want 0", got)
	}
}
