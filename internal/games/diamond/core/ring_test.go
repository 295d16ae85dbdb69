package core

import "testing"

func TestRingFIFOWithWraparound(t *testing.T) {
	r := NewRing[int](3)
	for round := 0; round < 4; round++ {
		for i := 0; i < 3; i++ {
			if !r.Push(round*10 + i) {
				t.Fatalf("round %d: Push %d failed", round, i)
			}
		}
		if r.Push(99) {
			t.Fatalf("round %d: Push on full ring succeeded", round)
		}
		if tail := r.Tail(); *tail != round*10+2 {
			t.Errorf("Tail = %d, want %d", *tail, round*10+2)
		}
		for i := 0; i < 3; i++ {
			v, ok := r.Pop()
			if !ok || v != round*10+i {
				t.Fatalf("round %d: Pop = (%d,%v), want %d", round, v, ok, round*10+i)
			}
		}
		// Offset the head so the next round wraps.
		r.Push(-1)
		r.Pop()
	}
	if _, ok := r.Pop(); ok {
		t.Error("Pop on empty ring succeeded")
	}
}

func TestRingAtAndClear(t *testing.T) {
	r := NewRing[string](2)
	r.Push("a")
	r.Pop()
	r.Push("b")
	r.Push("c")
	if *r.Peek() != "b" {
		t.Errorf("Peek = %q, want b", *r.Peek())
	}
	if *r.At(0) != "b" || *r.At(1) != "c" {
		t.Errorf("At = %q,%q, want b,c", *r.At(0), *r.At(1))
	}
	*r.At(1) = "d"
	r.Clear()
	if r.Len() != 0 || r.Tail() != nil || r.Peek() != nil || r.Cap() != 2 {
		t.Errorf("after Clear: len %d cap %d", r.Len(), r.Cap())
	}
	mustPanic(t, "At on empty ring", func() { r.At(0) })
}
