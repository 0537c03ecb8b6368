package visual

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

type fixedVariant int

func (f fixedVariant) GraphicVariant() int { return int(f) }

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestPick_InRange(t *testing.T) {
	buf := captureLog(t)
	set := NewVariantSet("charge", "oO@")

	if got := set.Pick(1); got != 'O' {
		t.Errorf("Pick(1) = %q, want 'O'", got)
	}
	if got := set.PickFor(fixedVariant(2)); got != '@' {
		t.Errorf("PickFor(2) = %q, want '@'", got)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestPick_OutOfRangeFallsBack(t *testing.T) {
	buf := captureLog(t)
	set := NewVariantSet("charge", "oO")

	for _, idx := range []int{-1, 2, 99} {
		if got := set.Pick(idx); got != 'o' {
			t.Errorf("Pick(%d) = %q, want default 'o'", idx, got)
		}
	}
	if strings.Count(buf.String(), "no variant") != 3 {
		t.Errorf("expected three logged errors, got: %s", buf.String())
	}
}

func TestPick_EmptySetAndNonProvider(t *testing.T) {
	captureLog(t)
	var empty VariantSet
	if got := empty.Pick(0); got != Fallback {
		t.Errorf("empty set Pick = %q, want fallback", got)
	}
	set := NewVariantSet("crate", "#")
	if got := set.PickFor(struct{}{}); got != '#' {
		t.Errorf("non-provider PickFor = %q, want '#'", got)
	}
}
