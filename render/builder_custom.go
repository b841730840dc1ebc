// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// CustomBuilder records caller-supplied drawing callbacks for
// geometries no dedicated builder covers. All other draw calls fall
// through.
type CustomBuilder struct {
	builderBase
}

// NewCustomBuilder returns a builder for custom drawing callbacks.
func NewCustomBuilder(opts BuilderOptions) *CustomBuilder {
	return &CustomBuilder{builderBase: newBuilderBase(opts)}
}

var _ Builder = (*CustomBuilder)(nil)
