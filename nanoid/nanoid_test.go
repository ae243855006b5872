package nanoid

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	id := String()
	if len(id) != defaultSize {
		t.Fatalf("len = %d", len(id))
	}
	if String() == id {
		t.Error("ids repeat")
	}
	if got := len(String(8)); got != 8 {
		t.Errorf("len = %d", got)
	}
}

func TestLower(t *testing.T) {
	id := Lower(32)
	if strings.ToLower(id) != id {
		t.Errorf("%q is not lowercase", id)
	}
}
