// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// hitMaskCache memoizes circular hit-test masks by radius. The mask for
// radius r is a (2r+1)x(2r+1) boolean disc; hit testing only inspects
// alpha under true cells so corner pixels of the sample square never
// produce false hits.
type hitMaskCache struct {
	masks map[int][]bool
}

func newHitMaskCache() *hitMaskCache {
	return &hitMaskCache{masks: make(map[int][]bool)}
}

func (c *hitMaskCache) mask(radius int) []bool {
	if m, ok := c.masks[radius]; ok {
		return m
	}
	m := circleMask(radius)
	c.masks[radius] = m
	return m
}

// circleMask rasterizes the disc: a midpoint-circle outline, then each
// row filled between its outline extremes.
func circleMask(radius int) []bool {
	size := radius*2 + 1
	mask := make([]bool, size*size)
	if radius <= 0 {
		mask[0] = true
		return mask
	}
	set := func(dx, dy int) {
		mask[(radius+dy)*size+(radius+dx)] = true
	}
	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		set(x, y)
		set(y, x)
		set(-y, x)
		set(-x, y)
		set(-x, -y)
		set(-y, -x)
		set(y, -x)
		set(x, -y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
	for row := 0; row < size; row++ {
		first, last := -1, -1
		for col := 0; col < size; col++ {
			if mask[row*size+col] {
				if first < 0 {
					first = col
				}
				last = col
			}
		}
		for col := first; col <= last; col++ {
			mask[row*size+col] = true
		}
	}
	return mask
}
