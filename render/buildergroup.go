// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"strconv"

	"github.com/vecmap/vecmap"
)

// BuilderGroup owns one Builder per (z-index, geometry kind) bucket and
// aggregates their output into the keyed bundle map Executors replay.
type BuilderGroup struct {
	opts     BuilderOptions
	builders map[string]map[vecmap.Kind]Builder

	// declutterGroup is the accumulator shared between a feature's
	// image and text draws when the caller continues the group.
	declutterGroup *Group
}

// NewBuilderGroup returns an empty builder group.
func NewBuilderGroup(opts BuilderOptions) *BuilderGroup {
	return &BuilderGroup{
		opts:     opts,
		builders: make(map[string]map[vecmap.Kind]Builder),
	}
}

// zKey stringifies a z-index so fractional and negative z-indexes each
// get their own bucket.
func zKey(zIndex float64) string {
	return strconv.FormatFloat(zIndex, 'g', -1, 64)
}

// GetBuilder returns the builder for the z-index and geometry kind,
// creating it on first use.
func (g *BuilderGroup) GetBuilder(zIndex float64, kind vecmap.Kind) Builder {
	key := zKey(zIndex)
	byKind, ok := g.builders[key]
	if !ok {
		byKind = make(map[vecmap.Kind]Builder)
		g.builders[key] = byKind
	}
	builder, ok := byKind[kind]
	if !ok {
		builder = newBuilder(kind, g.opts)
		byKind[kind] = builder
	}
	return builder
}

func newBuilder(kind vecmap.Kind, opts BuilderOptions) Builder {
	switch kind {
	case vecmap.KindPolygon, vecmap.KindCircle:
		return NewPolygonBuilder(opts)
	case vecmap.KindLineString:
		return NewLineStringBuilder(opts)
	case vecmap.KindImage:
		return NewImageBuilder(opts)
	case vecmap.KindText:
		return NewTextBuilder(opts)
	default:
		return NewCustomBuilder(opts)
	}
}

// AddDeclutter returns the declutter group for the next draws. With
// continueGroup a feature's label joins its symbol's group so the pair
// is kept or dropped together; otherwise a fresh group starts.
func (g *BuilderGroup) AddDeclutter(continueGroup bool) *Group {
	if continueGroup && g.declutterGroup != nil {
		return g.declutterGroup
	}
	g.declutterGroup = NewGroup()
	return g.declutterGroup
}

// IsEmpty returns true if no builder has recorded any instruction.
func (g *BuilderGroup) IsEmpty() bool {
	for _, byKind := range g.builders {
		for _, builder := range byKind {
			if !builder.Empty() {
				return false
			}
		}
	}
	return true
}

// Finish seals every builder and returns the non-empty bundles keyed by
// stringified z-index and geometry kind. The group must not be used
// afterwards.
func (g *BuilderGroup) Finish() map[string]map[vecmap.Kind]*Serialized {
	out := make(map[string]map[vecmap.Kind]*Serialized)
	for key, byKind := range g.builders {
		for kind, builder := range byKind {
			serialized := builder.Finish()
			if serialized.IsEmpty() {
				continue
			}
			if out[key] == nil {
				out[key] = make(map[vecmap.Kind]*Serialized)
			}
			out[key][kind] = serialized
		}
	}
	return out
}
