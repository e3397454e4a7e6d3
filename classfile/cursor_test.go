/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"testing"

	"github.com/pkg/errors"
)

func TestCursorReadPrimitives(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02, 0x03, 0x00, 0x00, 0x00, 0x2A})

	u8, err := c.readU8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("readU8() = %d, %v; want 1, nil", u8, err)
	}

	u16, err := c.readU16()
	if err != nil || u16 != 0x0203 {
		t.Fatalf("readU16() = %d, %v; want 0x0203, nil", u16, err)
	}

	u32, err := c.readU32()
	if err != nil || u32 != 0x2A {
		t.Fatalf("readU32() = %d, %v; want 42, nil", u32, err)
	}
}

func TestCursorShortReadIsUnexpectedEOF(t *testing.T) {
	c := newCursor([]byte{0x01})
	if _, err := c.readU16(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("readU16() on 1 byte: got %v, want ErrUnexpectedEOF", err)
	}
}

func TestCursorReadBytesBorrowsInput(t *testing.T) {
	b := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	c := newCursor(b)
	sub, err := c.readBytes(2)
	if err != nil {
		t.Fatal(err)
	}
	if &sub[0] != &b[0] {
		t.Fatal("readBytes copied instead of borrowing")
	}
	if c.remaining() != 2 {
		t.Fatalf("remaining() = %d, want 2", c.remaining())
	}
}

func TestCursorSubCursorIsScoped(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	c := newCursor(b)
	sub, err := c.sub(3)
	if err != nil {
		t.Fatal(err)
	}
	if sub.remaining() != 3 {
		t.Fatalf("sub cursor remaining = %d, want 3", sub.remaining())
	}
	if c.remaining() != 2 {
		t.Fatalf("parent cursor remaining = %d, want 2 (advanced past the whole region)", c.remaining())
	}
	// reading past the sub-cursor's declared region fails even though
	// the parent buffer has more bytes.
	if _, err := sub.readBytes(4); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("sub-cursor overread: got %v, want ErrUnexpectedEOF", err)
	}
}

func TestCursorU16Slice(t *testing.T) {
	c := newCursor([]byte{0x00, 0x02, 0x00, 0x0A, 0x00, 0x14})
	vals, err := c.u16Slice()
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0] != 10 || vals[1] != 20 {
		t.Fatalf("u16Slice() = %v, want [10 20]", vals)
	}
}

func TestCursorNegativeReadLength(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02})
	if _, err := c.readBytes(-1); err == nil {
		t.Fatal("readBytes(-1): want error, got nil")
	}
}
