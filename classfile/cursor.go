/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// cursor reads big-endian primitives from a borrowed byte slice. It never
// copies b; every slice it hands back (via readBytes or sub) is a view
// into the caller's buffer, which must outlive the decoded ClassFile.
// Every read is bounds-checked; there is no unchecked read variant.
//
// Fields are manual byte shifts rather than encoding/binary: the class
// file format is exclusively big-endian fixed-width integers and raw
// byte runs, so there is nothing a generic binary-reading library would
// buy over four lines of shifts.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b}
}

func (c *cursor) remaining() int {
	return len(c.b) - c.pos
}

func (c *cursor) readU8() (uint8, error) {
	if c.remaining() < 1 {
		return 0, errors.Wrapf(ErrUnexpectedEOF, "u8 at offset %d", c.pos)
	}
	v := c.b[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) readU16() (uint16, error) {
	if c.remaining() < 2 {
		return 0, errors.Wrapf(ErrUnexpectedEOF, "u16 at offset %d", c.pos)
	}
	v := uint16(c.b[c.pos])<<8 | uint16(c.b[c.pos+1])
	c.pos += 2
	return v, nil
}

func (c *cursor) readU32() (uint32, error) {
	if c.remaining() < 4 {
		return 0, errors.Wrapf(ErrUnexpectedEOF, "u32 at offset %d", c.pos)
	}
	v := uint32(c.b[c.pos])<<24 | uint32(c.b[c.pos+1])<<16 |
		uint32(c.b[c.pos+2])<<8 | uint32(c.b[c.pos+3])
	c.pos += 4
	return v, nil
}

// readBytes returns a borrowed sub-slice of length n and advances the
// cursor past it. The returned slice aliases c.b; callers must not
// retain it past the lifetime of the original input buffer.
func (c *cursor) readBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("negative read length %d at offset %d", n, c.pos)
	}
	if c.remaining() < n {
		return nil, errors.Wrapf(ErrUnexpectedEOF, "%d bytes at offset %d", n, c.pos)
	}
	v := c.b[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// skip advances the cursor n bytes without returning them, failing the
// same way readBytes would on a short buffer.
func (c *cursor) skip(n int) error {
	_, err := c.readBytes(n)
	return err
}

// sub returns a fresh cursor scoped to the next n bytes, positioned at
// their start, for sub-parsers (nested attribute sequences, the Code
// attribute body) that must not read past their own declared length.
// The parent cursor is advanced past the whole region regardless of how
// much of it the sub-cursor actually consumes.
func (c *cursor) sub(n int) (*cursor, error) {
	region, err := c.readBytes(n)
	if err != nil {
		return nil, err
	}
	return newCursor(region), nil
}

// u16Slice reads a u16 count n, then n big-endian u16 values.
func (c *cursor) u16Slice() ([]uint16, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "length prefix")
	}
	out := make([]uint16, n)
	for i := range out {
		v, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = v
	}
	return out, nil
}
