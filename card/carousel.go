package card

// Carousel is cyclic navigation over a fixed ordered list of N items
// Index arithmetic wraps in both directions; N == 1 makes both moves no-ops
type Carousel struct {
	n     int
	index int
}

// NewCarousel creates a carousel over n items positioned on the first
func NewCarousel(n int) (*Carousel, error) {
	if n < 1 {
		return nil, ErrNoItems
	}
	return &Carousel{n: n}, nil
}

// Next moves forward, wrapping from the last item to the first
func (c *Carousel) Next() int {
	if c.n > 0 {
		c.index = (c.index + 1) % c.n
	}
	return c.index
}

// Prev moves backward, wrapping from the first item to the last
func (c *Carousel) Prev() int {
	if c.n > 0 {
		c.index = (c.index - 1 + c.n) % c.n
	}
	return c.index
}

// Reset returns to the first item
func (c *Carousel) Reset() {
	c.index = 0
}

// Index returns the current position
func (c *Carousel) Index() int {
	return c.index
}

// Len returns the number of items
func (c *Carousel) Len() int {
	return c.n
}

// AtLastItem reports whether the last item is shown
func (c *Carousel) AtLastItem() bool {
	return c.index == c.n-1
}
