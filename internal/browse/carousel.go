package browse

// Carousel is a looping slide index.
type Carousel struct {
	index int
	size  int
}

func (c Carousel) Index() int { return c.index }
func (c Carousel) Len() int   { return c.size }

// Resize sets the slide count and keeps the index in range.
func (c *Carousel) Resize(n int) {
	c.size = max(0, n)
	if c.index >= c.size {
		c.index = 0
	}
}

func (c *Carousel) Next() {
	if c.size == 0 {
		return
	}
	c.index = (c.index + 1) % c.size
}

func (c *Carousel) Prev() {
	if c.size == 0 {
		return
	}
	c.index = (c.index - 1 + c.size) % c.size
}

// Set jumps to slide i; out-of-range values are ignored.
func (c *Carousel) Set(i int) {
	if i < 0 || i >= c.size {
		return
	}
	c.index = i
}
