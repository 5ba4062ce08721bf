package collections

import (
	"testing"
)

func TestSlicePool_GetPut(t *testing.T) {
	p := NewSlicePool[int](8)

	s := p.Get()
	if len(*s) != 0 {
		t.Errorf("expected empty slice, got len %d", len(*s))
	}

	*s = append(*s, 1, 2, 3)
	p.Put(s)

	s2 := p.Get()
	if len(*s2) != 0 {
		t.Errorf("expected cleared slice after Put, got len %d", len(*s2))
	}
}

func TestSlicePool_DefaultCapacity(t *testing.T) {
	p := NewSlicePool[string](0)

	s := p.Get()
	if cap(*s) == 0 {
		t.Error("expected non-zero default capacity")
	}
	p.Put(s)
}

func TestSlicePool_StructElements(t *testing.T) {
	type frame struct {
		depth int
		index int
	}
	p := NewSlicePool[frame](16)

	s := p.Get()
	*s = append(*s, frame{depth: 1, index: 2})
	if (*s)[0].depth != 1 {
		t.Error("unexpected element value")
	}
	p.Put(s)
}
