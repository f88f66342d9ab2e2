package ids

import (
	"testing"

	"github.com/segmentio/ksuid"
)

func TestNewKSUIDIsParsable(t *testing.T) {
	id := NewKSUID()
	if _, err := ksuid.Parse(id); err != nil {
		t.Fatalf("expected parsable ksuid, got %q: %v", id, err)
	}
	if id == NewKSUID() {
		t.Fatal("expected distinct identifiers")
	}
}

func TestDefaultSequenceIsIncreasing(t *testing.T) {
	gen, err := New(1)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	prev := gen.NextSequence()
	for i := 0; i < 100; i++ {
		next := gen.NextSequence()
		if next <= prev {
			t.Fatalf("expected increasing sequence, got %d after %d", next, prev)
		}
		prev = next
	}
	if gen.NewID() == "" {
		t.Fatal("expected document id")
	}
}

func TestNewRejectsInvalidNode(t *testing.T) {
	if _, err := New(-1); err == nil {
		t.Fatal("expected error for negative node")
	}
	if _, err := New(4096); err == nil {
		t.Fatal("expected error for node above limit")
	}
}
