// Package lzstring decodes data produced by the lz-string "compress"
// function and undoes the percent escaping that usually travels with it.
//
// Decoding is pure and allocation-local: every call owns its dictionary and
// bit position, so calls may run concurrently on independent inputs.
package lzstring

import (
	"errors"
	"unicode/utf16"
)

var (
	// ErrTruncated is reported when a bit is needed past the end of the stream
	ErrTruncated = errors.New("lzstring: stream truncated")
	// ErrInvalid is reported for a code that is neither known nor the next free slot
	ErrInvalid = errors.New("lzstring: invalid dictionary reference")
)

// Control codes of the compressed stream
const (
	codeLiteral8  = 0
	codeLiteral16 = 1
	codeEnd       = 2
)

// Outcome of a decompression
type Kind int

const (
	Empty Kind = iota
	Text
	Invalid
	Truncated
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Text:
		return "text"
	case Invalid:
		return "invalid"
	case Truncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// Result of a decompression. Only a Text result carries output.
type Result struct {
	kind  Kind
	units []uint16
}

func (r Result) Kind() Kind { return r.kind }

// Decoded text, empty unless Kind is Text
func (r Result) Text() string {
	if r.kind != Text {
		return ""
	}
	return string(utf16.Decode(r.units))
}

// Decoded UTF-16 code units, nil unless Kind is Text
func (r Result) Units() []uint16 {
	if r.kind != Text {
		return nil
	}
	return r.units
}

// Returns ErrInvalid or ErrTruncated for failed decodes and nil otherwise.
// An Empty result is not an error.
func (r Result) Err() error {
	switch r.kind {
	case Invalid:
		return ErrInvalid
	case Truncated:
		return ErrTruncated
	default:
		return nil
	}
}

// Decompresses a string whose UTF-16 code units form the compressed stream
func DecompressString(s string) Result {
	if s == "" {
		return Result{kind: Empty}
	}
	return Decompress(utf16.Encode([]rune(s)))
}

// Decompresses a stream of 16-bit code units
func Decompress(units []uint16) Result {
	if len(units) == 0 {
		return Result{kind: Empty}
	}

	d := newDecoder(units)
	return d.run()
}

// Per-call decoding state
type decoder struct {
	r         *BitReader
	dict      [][]uint16
	numBits   int
	enlargeIn int
	w         []uint16
	out       []uint16
}

func newDecoder(units []uint16) *decoder {
	return &decoder{
		r: NewBitReader(units),
		// codes 0, 1 and 2 are control codes and never looked up
		dict:      [][]uint16{nil, nil, nil},
		numBits:   3,
		enlargeIn: 4,
	}
}

func (d *decoder) dictSize() int {
	return len(d.dict)
}

func (d *decoder) grow() {
	if d.enlargeIn == 0 {
		d.enlargeIn = 1 << d.numBits
		d.numBits++
	}
}

func (d *decoder) readLiteral(width int) ([]uint16, error) {
	c, err := d.r.ReadBits(width)
	if err != nil {
		return nil, err
	}
	return []uint16{uint16(c)}, nil
}

func (d *decoder) fail(err error) Result {
	if errors.Is(err, ErrTruncated) {
		return Result{kind: Truncated}
	}
	return Result{kind: Invalid}
}

func (d *decoder) run() Result {
	next, err := d.r.ReadBits(2)
	if err != nil {
		return d.fail(err)
	}

	var first []uint16
	switch next {
	case codeLiteral8:
		first, err = d.readLiteral(8)
	case codeLiteral16:
		first, err = d.readLiteral(16)
	case codeEnd:
		return Result{kind: Empty}
	default:
		// unused by the format; treated like any unknown code
		return Result{kind: Invalid}
	}
	if err != nil {
		return d.fail(err)
	}

	d.dict = append(d.dict, first)
	d.w = first
	d.out = append(d.out, first...)

	for {
		if d.r.Exhausted() {
			return Result{kind: Truncated}
		}

		c, err := d.r.ReadBits(d.numBits)
		if err != nil {
			return d.fail(err)
		}

		switch c {
		case codeLiteral8, codeLiteral16:
			width := 8
			if c == codeLiteral16 {
				width = 16
			}
			lit, err := d.readLiteral(width)
			if err != nil {
				return d.fail(err)
			}
			d.dict = append(d.dict, lit)
			c = d.dictSize() - 1
			d.enlargeIn--
		case codeEnd:
			return Result{kind: Text, units: d.out}
		}

		d.grow()

		var entry []uint16
		switch {
		case c < d.dictSize():
			entry = d.dict[c]
		case c == d.dictSize():
			entry = concat(d.w, d.w[0])
		default:
			return Result{kind: Invalid}
		}

		d.out = append(d.out, entry...)

		d.dict = append(d.dict, concat(d.w, entry[0]))
		d.enlargeIn--

		d.w = entry
		d.grow()
	}
}

// Returns a fresh slice holding prefix followed by u
func concat(prefix []uint16, u uint16) []uint16 {
	s := make([]uint16, len(prefix)+1)
	copy(s, prefix)
	s[len(prefix)] = u
	return s
}
