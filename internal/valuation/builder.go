// Package valuation implements the valuation engine: a depth-first
// validation and pricing walk over a declared asset document that produces
// an immutable priced tree with aggregated BRL values and one display color
// per node. A build is all-or-nothing: the first validation or pricing
// failure aborts it with an error carrying the breadcrumb path of the
// offending entry.
package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
	"github.com/wealthmap/wealthmap-backend/internal/marketdata"
	"github.com/wealthmap/wealthmap-backend/internal/model"
	"github.com/wealthmap/wealthmap-backend/internal/palette"
)

// Builder validates declared documents and prices them into trees. It is
// stateless between builds; each build owns its own palette.
type Builder struct {
	gateway marketdata.Gateway

	// Now returns the valuation instant for time-dependent accrual math.
	// Overridable in tests.
	Now func() time.Time

	// Rand drives the palette shuffle. Nil uses the global source, so each
	// build gets a fresh palette ordering.
	Rand *rand.Rand
}

// NewBuilder creates a builder pricing against the given market data gateway.
func NewBuilder(gateway marketdata.Gateway) *Builder {
	return &Builder{gateway: gateway, Now: time.Now}
}

// BuildPricedTree validates the raw declared document, prices every leaf,
// aggregates group values bottom-up, and assigns colors in traversal order.
// It either returns a fully valued tree or the first error encountered in
// traversal order; there is no partial output.
//
// Leaves are priced sequentially, one sibling at a time, so the number of
// concurrent external calls stays bounded regardless of document fan-out.
func (b *Builder) BuildPricedTree(ctx context.Context, doc json.RawMessage) (*model.GroupNode, error) {
	obj, err := model.DecodeObject(doc)
	if err != nil {
		return nil, err
	}
	if !model.IsGroupEntry(obj) {
		return nil, fmt.Errorf("%w: expected an asset group at the document root", apperrors.ErrInvalidDocument)
	}

	// Pre-pass: size the palette to the total colorable node count (every
	// leaf plus every group except the root) before any pricing happens.
	pal, err := palette.New(countColorables(obj), b.Rand)
	if err != nil {
		return nil, err
	}

	return b.buildGroup(ctx, obj, nil, pal)
}

// countColorables counts the nodes of a raw group that will receive a color.
// Entries that fail to decode are not counted: the build pass fails on them
// before their color would have been drawn, so an under-count never causes a
// draw past the end of the palette.
func countColorables(obj map[string]json.RawMessage) int {
	var entries []json.RawMessage
	if json.Unmarshal(obj["entries"], &entries) != nil {
		return 0
	}
	n := 0
	for _, raw := range entries {
		entry, err := model.DecodeObject(raw)
		if err != nil {
			continue
		}
		switch {
		case model.IsAssetEntry(entry):
			n++
		case model.IsGroupEntry(entry):
			n += countColorables(entry) + 1
		}
	}
	return n
}

// buildGroup validates one declared group and recursively prices its
// entries, left to right. Each produced child is paired with the next
// palette color as it is appended, so sibling order alone determines color
// assignment. The returned node's value is the sum of its children's values.
func (b *Builder) buildGroup(ctx context.Context, obj map[string]json.RawMessage, path []string, pal *palette.Palette) (*model.GroupNode, error) {
	name, rawEntries, err := model.DecodeGroupShell(obj)
	if err != nil {
		return nil, withPath(err, path)
	}

	childPath := make([]string, len(path), len(path)+1)
	copy(childPath, path)
	childPath = append(childPath, name)

	group := &model.AssetGroup{Name: name, Entries: make([]model.Entry, 0, len(rawEntries))}
	children := make([]model.Child, 0, len(rawEntries))
	value := 0.0

	for _, raw := range rawEntries {
		entry, err := model.DecodeObject(raw)
		if err != nil {
			return nil, withPath(err, childPath)
		}

		var child model.Node
		if model.IsAssetEntry(entry) {
			asset, err := model.DecodeAsset(raw)
			if err != nil {
				return nil, withPath(err, childPath)
			}
			node, err := b.priceAsset(ctx, asset, childPath)
			if err != nil {
				return nil, err
			}
			group.Entries = append(group.Entries, asset)
			child = node
		} else {
			// Anything that is not a leaf must validate as a sub-group.
			sub, err := b.buildGroup(ctx, entry, childPath, pal)
			if err != nil {
				return nil, err
			}
			group.Entries = append(group.Entries, sub.Group())
			child = sub
		}

		value += child.Value()
		color, err := pal.Next()
		if err != nil {
			return nil, err
		}
		children = append(children, model.Child{Node: child, Color: color})
	}

	return model.NewGroupNode(name, value, group, path, children), nil
}

// withPath annotates an error with the dot-joined breadcrumb path of the
// entry it occurred at, preserving the wrapped sentinel.
func withPath(err error, path []string) error {
	return fmt.Errorf("%w (path: %s)", err, strings.Join(path, "."))
}
