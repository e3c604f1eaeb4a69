// Package palette generates the display color palette for a priced tree:
// exactly one perceptually distinct color per colorable node, shuffled, and
// dispensed in call order without repetition within one build.
package palette

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
	"github.com/wealthmap/wealthmap-backend/internal/model"
)

// Generation bounds in CIE-Lab, normalized to [0,1]. Lightness is kept low
// and chroma moderate so the colors read well as chart fills, and the bounded
// box keeps any two palette members perceptually separable.
const (
	lightMin  = 0.05
	lightMax  = 0.50
	chromaMin = 0.20
	chromaMax = 0.80
)

// Palette is a build-local allocation of colors. It is not safe for
// concurrent use; one build owns one palette.
type Palette struct {
	colors []model.Color
	next   int
}

// New generates a shuffled palette of exactly n distinct colors. The rand
// source drives the shuffle; passing a seeded source makes the palette
// deterministic for tests. A nil source falls back to the global one.
func New(n int, rnd *rand.Rand) (*Palette, error) {
	if n == 0 {
		return &Palette{}, nil
	}

	colors, err := colorful.SoftPaletteEx(n, colorful.SoftPaletteSettings{
		CheckColor:  inBounds,
		Iterations:  50,
		ManySamples: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: palette generation for %d colors: %v", apperrors.ErrInternal, n, err)
	}

	out := make([]model.Color, n)
	for i, c := range colors {
		out[i] = model.Color(c.Clamped().Hex())
	}

	shuffle := rand.Shuffle
	if rnd != nil {
		shuffle = rnd.Shuffle
	}
	shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return &Palette{colors: out}, nil
}

// Next dispenses the next color. Drawing more colors than the palette was
// sized for is an internal-consistency error: the pre-count pass and the
// build pass disagreed.
func (p *Palette) Next() (model.Color, error) {
	if p.next >= len(p.colors) {
		return "", fmt.Errorf("%w: index %d, palette length %d", apperrors.ErrPaletteExhausted, p.next, len(p.colors))
	}
	c := p.colors[p.next]
	p.next++
	return c, nil
}

// Size returns the total number of colors the palette was generated with.
func (p *Palette) Size() int { return len(p.colors) }

func inBounds(l, a, b float64) bool {
	chroma := math.Sqrt(a*a + b*b)
	return l >= lightMin && l <= lightMax && chroma >= chromaMin && chroma <= chromaMax
}
