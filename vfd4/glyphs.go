// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package vfd4

// Segment names of a digit cell, in the XABCDEFG layout used by glyphTable.
//
//	   A
//	  ---
//	F |   | B      * X
//	  -G-
//	E |   | C      * Y
//	  ---
//	   D
const (
	SegG byte = 1 << iota
	SegF
	SegE
	SegD
	SegC
	SegB
	SegA
	SegX
)

// Dots of the colon cell, in the XY layout used by dotTable.
const (
	DotY byte = 1 << iota
	DotX
)

// Unknown is the pattern stored for characters without a representation.
// It is also the pattern of a space.
const Unknown byte = 0

const (
	firstChar = ' '
	lastChar  = '~'
)

// glyphTable maps printable ASCII (0x20..0x7E) to XABCDEFG patterns for the
// digit cells.
var glyphTable = [lastChar - firstChar + 1]byte{
	0b00000000, // ' '
	0b10110000, // '!'
	0b00100010, // '"'
	Unknown,    // '#'
	Unknown,    // '$'
	0b01001001, // '%'
	Unknown,    // '&'
	0b00000010, // '\''
	0b01001110, // '('
	0b01111000, // ')'
	0b01000000, // '*'
	Unknown,    // '+'
	0b00010000, // ','
	0b00000001, // '-'
	0b00001000, // '.'
	0b00100101, // '/'
	0b01111110, // '0'
	0b00110000, // '1'
	0b01101101, // '2'
	0b01111001, // '3'
	0b00110011, // '4'
	0b01011011, // '5'
	0b01011111, // '6'
	0b01110000, // '7'
	0b01111111, // '8'
	0b01111011, // '9'
	0b01001000, // ':'
	0b01011000, // ';'
	0b00001100, // '<'
	0b00001001, // '='
	0b00011000, // '>'
	0b01100101, // '?'
	0b01101111, // '@'
	0b01110111, // 'A'
	0b00011111, // 'B'
	0b01001110, // 'C'
	0b00111101, // 'D'
	0b01001111, // 'E'
	0b01000111, // 'F'
	0b01011110, // 'G'
	0b00110111, // 'H'
	0b00110000, // 'I'
	0b00111100, // 'J'
	Unknown,    // 'K'
	0b00001110, // 'L'
	Unknown,    // 'M'
	0b00010101, // 'N'
	0b01111110, // 'O'
	0b01100111, // 'P'
	0b01111110, // 'Q'
	0b00000101, // 'R'
	0b01011011, // 'S'
	0b00000111, // 'T'
	0b00111110, // 'U'
	0b00111110, // 'V'
	0b00111111, // 'W'
	0b00110111, // 'X'
	0b00100111, // 'Y'
	0b01101101, // 'Z'
	0b01001110, // '['
	Unknown,    // '\\'
	0b01111000, // ']'
	0b01000000, // '^'
	0b00001000, // '_'
	0b00100000, // '`'
	0b01110111, // 'a'
	0b00011111, // 'b'
	0b00001101, // 'c'
	0b00111101, // 'd'
	0b01001111, // 'e'
	0b01000111, // 'f'
	0b01011110, // 'g'
	0b00010111, // 'h'
	0b00010000, // 'i'
	0b00111100, // 'j'
	Unknown,    // 'k'
	0b00001110, // 'l'
	Unknown,    // 'm'
	0b00010101, // 'n'
	0b00011101, // 'o'
	0b01100111, // 'p'
	Unknown,    // 'q'
	0b00000101, // 'r'
	0b01011011, // 's'
	0b00000111, // 't'
	0b00011100, // 'u'
	0b00011100, // 'v'
	Unknown,    // 'w'
	Unknown,    // 'x'
	0b00100111, // 'y'
	Unknown,    // 'z'
	0b00110001, // '{'
	0b00000110, // '|'
	0b00000111, // '}'
	0b01100011, // '~' (degree sign)
}

// dotTable maps printable ASCII to XY patterns for the colon cell.
var dotTable = [lastChar - firstChar + 1]byte{
	0b00000000, // ' '
	0b00000011, // '!'
	0b00000010, // '"'
	Unknown,    // '#'
	Unknown,    // '$'
	0b00000011, // '%'
	Unknown,    // '&'
	0b00000010, // '\''
	0b00000011, // '('
	0b00000011, // ')'
	0b00000010, // '*'
	0b00000010, // '+'
	0b00000001, // ','
	0b00000010, // '-'
	0b00000001, // '.'
	0b00000011, // '/'
	Unknown,    // '0'
	Unknown,    // '1'
	Unknown,    // '2'
	Unknown,    // '3'
	Unknown,    // '4'
	Unknown,    // '5'
	Unknown,    // '6'
	Unknown,    // '7'
	Unknown,    // '8'
	Unknown,    // '9'
	0b00000011, // ':'
	0b00000011, // ';'
	Unknown,    // '<'
	0b00000011, // '='
	Unknown,    // '>'
	Unknown,    // '?'
	Unknown,    // '@'
	Unknown,    // 'A'
	Unknown,    // 'B'
	Unknown,    // 'C'
	Unknown,    // 'D'
	Unknown,    // 'E'
	Unknown,    // 'F'
	Unknown,    // 'G'
	Unknown,    // 'H'
	Unknown,    // 'I'
	Unknown,    // 'J'
	Unknown,    // 'K'
	Unknown,    // 'L'
	Unknown,    // 'M'
	Unknown,    // 'N'
	Unknown,    // 'O'
	Unknown,    // 'P'
	Unknown,    // 'Q'
	Unknown,    // 'R'
	Unknown,    // 'S'
	Unknown,    // 'T'
	Unknown,    // 'U'
	Unknown,    // 'V'
	Unknown,    // 'W'
	Unknown,    // 'X'
	Unknown,    // 'Y'
	Unknown,    // 'Z'
	Unknown,    // '['
	Unknown,    // '\\'
	0b00000011, // ']'
	0b00000010, // '^'
	0b00000001, // '_'
	0b00000010, // '`'
	Unknown,    // 'a'
	Unknown,    // 'b'
	Unknown,    // 'c'
	Unknown,    // 'd'
	Unknown,    // 'e'
	Unknown,    // 'f'
	Unknown,    // 'g'
	Unknown,    // 'h'
	Unknown,    // 'i'
	Unknown,    // 'j'
	Unknown,    // 'k'
	Unknown,    // 'l'
	Unknown,    // 'm'
	Unknown,    // 'n'
	Unknown,    // 'o'
	Unknown,    // 'p'
	Unknown,    // 'q'
	Unknown,    // 'r'
	Unknown,    // 's'
	Unknown,    // 't'
	Unknown,    // 'u'
	Unknown,    // 'v'
	Unknown,    // 'w'
	Unknown,    // 'x'
	Unknown,    // 'y'
	Unknown,    // 'z'
	0b00000011, // '{'
	0b00000011, // '|'
	0b00000011, // '}'
	0b00000010, // '~'
}

func lookup(table *[lastChar - firstChar + 1]byte, c byte) (byte, bool) {
	if c < firstChar || c > lastChar {
		return Unknown, false
	}
	v := table[c-firstChar]
	return v, v != Unknown || c == ' '
}

// Glyph returns the XABCDEFG pattern for c. found is false when c is outside
// the printable ASCII range or has no representation, in which case the
// returned pattern is Unknown. A space is blank too but reports found=true,
// so it is never logged as unrepresentable.
func Glyph(c byte) (pattern byte, found bool) {
	return lookup(&glyphTable, c)
}

// Dot returns the XY pattern for c as shown on the colon cell. As with Glyph,
// a space reports found=true.
func Dot(c byte) (pattern byte, found bool) {
	return lookup(&dotTable, c)
}

// RemapGlyph converts an XABCDEFG pattern to the wiring of the digit cells.
// The tube is mounted upside down, so the segments end up in _DEFABCG order.
func RemapGlyph(b byte) byte {
	var r byte
	if b&SegA != 0 {
		r |= 0x08
	}
	if b&SegB != 0 {
		r |= 0x04
	}
	if b&SegC != 0 {
		r |= 0x02
	}
	if b&SegD != 0 {
		r |= 0x40
	}
	if b&SegE != 0 {
		r |= 0x20
	}
	if b&SegF != 0 {
		r |= 0x10
	}
	if b&SegG != 0 {
		r |= 0x01
	}
	return r
}

// UnmapGlyph is the inverse of RemapGlyph. It returns the XABCDEFG pattern
// of a digit cell as stored in the display buffer.
func UnmapGlyph(b byte) byte {
	var r byte
	if b&0x08 != 0 {
		r |= SegA
	}
	if b&0x04 != 0 {
		r |= SegB
	}
	if b&0x02 != 0 {
		r |= SegC
	}
	if b&0x40 != 0 {
		r |= SegD
	}
	if b&0x20 != 0 {
		r |= SegE
	}
	if b&0x10 != 0 {
		r |= SegF
	}
	if b&0x01 != 0 {
		r |= SegG
	}
	return r
}

// RemapDot swaps the X and Y dots to match the wiring of the colon cell.
func RemapDot(b byte) byte {
	var r byte
	if b&DotX != 0 {
		r |= DotY
	}
	if b&DotY != 0 {
		r |= DotX
	}
	return r
}

// UnmapDot is the inverse of RemapDot.
func UnmapDot(b byte) byte {
	return RemapDot(b)
}
