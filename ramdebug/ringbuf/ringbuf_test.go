package ringbuf

import "testing"

func TestWriteWrapsAndMarksWrapped(t *testing.T) {
	b := New(4)
	for i := uint32(0); i < 3; i++ {
		if _, wrapped := b.Write(i); wrapped {
			t.Fatalf("unexpected wrap at write %d", i)
		}
	}
	if b.HasWrapped() {
		t.Fatal("should not have wrapped yet")
	}
	wi, wrapped := b.Write(3)
	if !wrapped || wi != 0 {
		t.Fatalf("Write(3) = (%d, %v), want (0, true)", wi, wrapped)
	}
	if !b.HasWrapped() {
		t.Fatal("expected HasWrapped true after filling capacity")
	}
}

func TestSetWriteIndexClearsWrapped(t *testing.T) {
	b := New(4)
	for i := uint32(0); i < 5; i++ {
		b.Write(i)
	}
	if !b.HasWrapped() {
		t.Fatal("expected wrapped after 5 writes into a 4-word buffer")
	}
	b.SetWriteIndex(2)
	if b.HasWrapped() {
		t.Fatal("SetWriteIndex must clear the wrapped flag")
	}
	if b.WriteIndex() != 2 {
		t.Fatalf("WriteIndex() = %d, want 2", b.WriteIndex())
	}
}

func TestLatchStartAndAt(t *testing.T) {
	b := New(4)
	// fill 0,1,2,3 then wrap and write 4,5 -> data is [4,5,2,3], writeIndex=2
	for i := uint32(0); i < 6; i++ {
		b.Write(i)
	}
	if b.WriteIndex() != 2 {
		t.Fatalf("WriteIndex() = %d, want 2", b.WriteIndex())
	}
	// latch with a 3-sample pretrigger window: start = (2 - 3 + 4) % 4 = 3
	b.LatchStart(3)
	if b.StartIndex() != 3 {
		t.Fatalf("StartIndex() = %d, want 3", b.StartIndex())
	}
	want := []uint32{3, 4, 5, 2} // offsets 0..3 from startIndex=3, wrapping
	for i, w := range want {
		if got := b.At(uint32(i)); got != w {
			t.Errorf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestLatchStartZeroPretrigger(t *testing.T) {
	b := New(4)
	b.Write(10)
	b.Write(11)
	b.LatchStart(0)
	if b.StartIndex() != b.WriteIndex() {
		t.Fatalf("zero-pretrigger latch should start at the current write index")
	}
}

func TestResetClearsDataAndCursors(t *testing.T) {
	b := New(4)
	b.Write(1)
	b.Write(2)
	b.LatchStart(1)
	b.Reset()
	if b.WriteIndex() != 0 || b.StartIndex() != 0 || b.HasWrapped() {
		t.Fatal("Reset must zero both cursors and the wrapped flag")
	}
	for i := uint32(0); i < uint32(b.Len()); i++ {
		if b.At(i) != 0 {
			t.Fatalf("At(%d) = %d after Reset, want 0", i, b.At(i))
		}
	}
}
