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

func TestDecodeSameFrame(t *testing.T) {
	f, err := decodeStackMapFrame(newCursor([]byte{10}))
	if err != nil {
		t.Fatal(err)
	}
	sf, ok := f.(SameFrame)
	if !ok || sf.FrameType != 10 {
		t.Fatalf("got %#v, want SameFrame{10}", f)
	}
}

func TestDecodeSameLocals1StackItemFrame(t *testing.T) {
	// tag 64 + VInteger verification type.
	f, err := decodeStackMapFrame(newCursor([]byte{64, byte(VInteger)}))
	if err != nil {
		t.Fatal(err)
	}
	sl, ok := f.(SameLocals1StackItemFrame)
	if !ok || sl.Stack.Tag != VInteger {
		t.Fatalf("got %#v, want SameLocals1StackItemFrame with VInteger", f)
	}
}

func TestDecodeReservedFrameRange(t *testing.T) {
	for _, tag := range []byte{128, 200, 246} {
		_, err := decodeStackMapFrame(newCursor([]byte{tag}))
		if !errors.Is(err, ErrReservedFrameType) {
			t.Fatalf("tag %d: got %v, want ErrReservedFrameType", tag, err)
		}
	}
}

func TestDecodeSameLocals1StackItemFrameExtended(t *testing.T) {
	f, err := decodeStackMapFrame(newCursor([]byte{247, 0x00, 0x05, byte(VTop)}))
	if err != nil {
		t.Fatal(err)
	}
	ext, ok := f.(SameLocals1StackItemFrameExtended)
	if !ok || ext.OffsetDelta != 5 {
		t.Fatalf("got %#v, want extended frame with offset_delta=5", f)
	}
}

func TestDecodeChopFrame(t *testing.T) {
	f, err := decodeStackMapFrame(newCursor([]byte{249, 0x00, 0x03}))
	if err != nil {
		t.Fatal(err)
	}
	chop, ok := f.(ChopFrame)
	if !ok || chop.FrameType != 249 || chop.OffsetDelta != 3 {
		t.Fatalf("got %#v, want ChopFrame{249, 3}", f)
	}
}

func TestDecodeAppendFrame(t *testing.T) {
	// tag 253 -> 2 appended locals (Integer, Object->class #1)
	b := []byte{253, 0x00, 0x01, byte(VInteger), byte(VObject), 0x00, 0x01}
	f, err := decodeStackMapFrame(newCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	app, ok := f.(AppendFrame)
	if !ok || len(app.Locals) != 2 {
		t.Fatalf("got %#v, want AppendFrame with 2 locals", f)
	}
	if app.Locals[1].Tag != VObject || app.Locals[1].ObjectClass.Index() != 1 {
		t.Fatalf("locals[1] = %+v, want Object referencing class #1", app.Locals[1])
	}
}

func TestDecodeFullFrame(t *testing.T) {
	b := []byte{
		255,
		0x00, 0x02, // offset_delta
		0x00, 0x01, byte(VInteger), // 1 local
		0x00, 0x01, byte(VLong), // 1 stack item
	}
	f, err := decodeStackMapFrame(newCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	full, ok := f.(FullFrame)
	if !ok || len(full.Locals) != 1 || len(full.Stack) != 1 {
		t.Fatalf("got %#v, want FullFrame with 1 local and 1 stack item", f)
	}
}

func TestDecodeVerificationTypeUnknownTag(t *testing.T) {
	_, err := decodeVerificationType(newCursor([]byte{99}))
	if !errors.Is(err, ErrUnknownVerificationTypeInfoTag) {
		t.Fatalf("got %v, want ErrUnknownVerificationTypeInfoTag", err)
	}
}

func TestDecodeStackMapFramesTable(t *testing.T) {
	// two SameFrame entries back to back.
	b := []byte{0x00, 0x02, 5, 6}
	frames, err := decodeStackMapFrames(newCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}
}
