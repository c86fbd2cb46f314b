package lzstring

// Reads bits MSB-first out of a stream of 16-bit code units
type BitReader struct {
	units  []uint16
	index  int    // next unit to load into the window
	window uint16 // unit currently being read
	mask   uint16 // bit of window returned by the next read, 0 when used up
}

// Creates a bit reader positioned on the first bit of units
func NewBitReader(units []uint16) *BitReader {
	r := &BitReader{units: units}
	if len(units) > 0 {
		r.window = units[0]
		r.index = 1
		r.mask = 0x8000
	}
	return r
}

// Reports whether every bit of the stream has been consumed
func (r *BitReader) Exhausted() bool {
	return r.mask == 0 && r.index >= len(r.units)
}

// Returns the next bit of the stream.
// The window is refilled lazily, so a stream whose last code ends exactly
// on a unit boundary can still be read to its end.
func (r *BitReader) ReadBit() (uint16, error) {
	if r.mask == 0 {
		if r.index >= len(r.units) {
			return 0, ErrTruncated
		}
		r.window = r.units[r.index]
		r.index++
		r.mask = 0x8000
	}

	var bit uint16
	if r.window&r.mask != 0 {
		bit = 1
	}
	r.mask >>= 1

	return bit, nil
}

// Reads n bits. The first bit read is bit 0 of the result.
func (r *BitReader) ReadBits(n int) (int, error) {
	value := 0
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		value |= int(bit) << i
	}
	return value, nil
}
