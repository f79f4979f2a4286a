package waterfall

// Columns tracks the fill level of each column during a layout pass.
//
// Heights only grow between resets. Column selection is the greedy
// shortest-first heuristic for multiway partitioning: not optimal, but
// O(items × columns) and stable.
type Columns struct {
	heights []float64
}

// NewColumns returns a tracker with n columns at height zero.
// n below 1 is treated as 1.
func NewColumns(n int) *Columns {
	c := &Columns{}
	c.Reset(n, 0)
	return c
}

// Reset sets the number of columns to n and every height to initial.
func (c *Columns) Reset(n int, initial float64) {
	n = max(n, 1)
	if cap(c.heights) >= n {
		c.heights = c.heights[:n]
	} else {
		c.heights = make([]float64, n)
	}
	for i := range c.heights {
		c.heights[i] = initial
	}
}

// Len returns the number of columns.
func (c *Columns) Len() int { return len(c.heights) }

// Shortest returns the index of the lowest column. Ties go to the lowest index.
func (c *Columns) Shortest() int {
	best := 0
	for i := 1; i < len(c.heights); i++ {
		if c.heights[i] < c.heights[best] {
			best = i
		}
	}
	return best
}

// Tallest returns the index of the highest column. Ties go to the lowest index.
func (c *Columns) Tallest() int {
	best := 0
	for i := 1; i < len(c.heights); i++ {
		if c.heights[i] > c.heights[best] {
			best = i
		}
	}
	return best
}

// Place grows column col by h and returns the y where the placed item starts.
func (c *Columns) Place(col int, h float64) float64 {
	y := c.heights[col]
	c.heights[col] = y + h
	return y
}

// Height returns the current fill level of column col.
func (c *Columns) Height(col int) float64 { return c.heights[col] }

// Heights returns a copy of all fill levels.
func (c *Columns) Heights() []float64 {
	out := make([]float64, len(c.heights))
	copy(out, c.heights)
	return out
}

// Spread returns the difference between the tallest and shortest column.
func (c *Columns) Spread() float64 {
	return c.heights[c.Tallest()] - c.heights[c.Shortest()]
}
