package delay

import "fmt"

// Line is a fixed-capacity circular delay line. Cursor arithmetic is always
// modulo the capacity; reads never index out of bounds.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size. The size must cover the largest
// delay that will ever be read; it is never grown afterwards.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. A delay of 1 returns the most
// recently written sample. Delays beyond the capacity wrap; callers clamp
// to Len()-1 when that matters.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	readPos := (d.writePos - delay%size + size) % size
	return d.buffer[readPos]
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
