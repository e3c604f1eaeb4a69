package palette_test

import (
	"errors"
	"math"
	"math/rand"
	"regexp"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
	"github.com/wealthmap/wealthmap-backend/internal/palette"
)

var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// TestPalette_DistinctColors tests generation of an exact-size palette.
//
// WHY: Every colorable node gets exactly one color and no two nodes may
// share one, so the palette must hold n distinct well-formed hex values.
func TestPalette_DistinctColors(t *testing.T) {
	p, err := palette.New(24, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if p.Size() != 24 {
		t.Fatalf("Size() = %d, want 24", p.Size())
	}

	seen := make(map[string]bool)
	for i := 0; i < 24; i++ {
		c, err := p.Next()
		if err != nil {
			t.Fatalf("Next() draw %d returned error: %v", i, err)
		}
		if !hexColor.MatchString(string(c)) {
			t.Errorf("draw %d produced malformed color %q", i, c)
		}
		if seen[string(c)] {
			t.Errorf("color %q dispensed twice", c)
		}
		seen[string(c)] = true
	}
}

// TestPalette_Exhaustion tests over-drawing.
//
// WHY: Drawing past the generated size means the caller counted colorables
// wrong; that is an internal bug and must fail loudly rather than recycle a
// color already assigned to another node.
func TestPalette_Exhaustion(t *testing.T) {
	p, err := palette.New(2, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := p.Next(); err != nil {
			t.Fatalf("Next() draw %d returned error: %v", i, err)
		}
	}

	_, err = p.Next()
	if !errors.Is(err, apperrors.ErrPaletteExhausted) {
		t.Errorf("expected exhaustion error, got: %v", err)
	}
}

// TestPalette_GenerationBounds tests the perceptual constraints.
//
// WHY: Colors are generated inside a bounded chroma/lightness box so they
// read well as chart fills. Clamping into sRGB can nudge a color slightly,
// so the assertions carry a tolerance.
func TestPalette_GenerationBounds(t *testing.T) {
	p, err := palette.New(16, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	for i := 0; i < 16; i++ {
		c, err := p.Next()
		if err != nil {
			t.Fatalf("Next() draw %d returned error: %v", i, err)
		}
		parsed, err := colorful.Hex(string(c))
		if err != nil {
			t.Fatalf("draw %d is not a hex color: %v", i, err)
		}
		l, a, b := parsed.Lab()
		if l > 0.60 {
			t.Errorf("color %q lightness %.2f, want dark chart fills", c, l)
		}
		if chroma := math.Sqrt(a*a + b*b); chroma < 0.10 {
			t.Errorf("color %q chroma %.2f, too close to gray", c, chroma)
		}
	}
}

// TestPalette_Empty tests the zero-size palette.
func TestPalette_Empty(t *testing.T) {
	p, err := palette.New(0, nil)
	if err != nil {
		t.Fatalf("New(0) returned error: %v", err)
	}
	if p.Size() != 0 {
		t.Errorf("Size() = %d, want 0", p.Size())
	}
	if _, err := p.Next(); !errors.Is(err, apperrors.ErrPaletteExhausted) {
		t.Errorf("expected exhaustion error on empty palette, got: %v", err)
	}
}
