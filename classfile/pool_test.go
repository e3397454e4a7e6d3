/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// buildPool decodes a constant pool from raw entry bytes (everything
// after constant_pool_count) for count logical slots.
func buildPool(t *testing.T, count uint16, body []byte) *ConstantPool {
	t.Helper()
	cp, err := decodeConstantPool(newCursor(body), count)
	if err != nil {
		t.Fatalf("decodeConstantPool: %v", err)
	}
	return cp
}

func TestDecodeConstantPoolSimpleEntries(t *testing.T) {
	// count=4: [0]=absent, [1]=Utf8 "Hi", [2]=Integer 7, [3]=Class -> #1
	body := []byte{
		tagUtf8, 0x00, 0x02, 'H', 'i',
		tagInteger, 0x00, 0x00, 0x00, 0x07,
		tagClass, 0x00, 0x01,
	}
	cp := buildPool(t, 4, body)

	if cp.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", cp.Count())
	}

	utf8, err := GetChecked(cp, Pointer[Utf8Entry](1))
	if err != nil {
		t.Fatal(err)
	}
	if string(utf8.Bytes) != "Hi" {
		t.Fatalf("utf8 bytes = %q, want %q", utf8.Bytes, "Hi")
	}

	integer := Get(cp, Pointer[IntegerEntry](2))
	if integer.Bits != 7 {
		t.Fatalf("integer bits = %d, want 7", integer.Bits)
	}

	class := Get(cp, Pointer[ClassEntry](3))
	if class.Name.Index() != 1 {
		t.Fatalf("class name index = %d, want 1", class.Name.Index())
	}
}

// TestLongDoubleSlotRule checks a pool with count=4 containing a Long
// at slot 1 and a Class (pointing to a Utf8 at 4) — slot 2 must be the
// unusable placeholder, and a typed pointer with raw index 2 must fail
// with ErrInvalidCPIndex via the checked accessor.
func TestLongDoubleSlotRule(t *testing.T) {
	body := []byte{
		tagLong, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02,
		tagClass, 0x00, 0x00, // placeholder for slot 3 in this truncated example isn't reached
	}
	// count=4 means logical slots 0..3; slot 1 = Long (consumes 1 and 2),
	// slot 3 = Class. Rebuild body so slot 3 is actually the Class entry.
	body = []byte{
		tagLong, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02,
		tagClass, 0x00, 0x04,
	}
	cp := buildPool(t, 4, body)

	if cp.Tag(2) != tagAbsent {
		t.Fatalf("Tag(2) = %d, want tagAbsent (0)", cp.Tag(2))
	}

	_, err := GetChecked(cp, Pointer[LongEntry](2))
	if !errors.Is(err, ErrInvalidCPIndex) {
		t.Fatalf("GetChecked on the post-Long placeholder slot: got %v, want ErrInvalidCPIndex", err)
	}

	long := Get(cp, Pointer[LongEntry](1))
	if long.High != 1 || long.Low != 2 {
		t.Fatalf("long = %+v, want {High:1 Low:2}", long)
	}
}

func TestGetCheckedWrongType(t *testing.T) {
	body := []byte{tagUtf8, 0x00, 0x01, 'x'}
	cp := buildPool(t, 2, body)

	_, err := GetChecked(cp, Pointer[IntegerEntry](1))
	if !errors.Is(err, ErrWrongCPType) {
		t.Fatalf("GetChecked wrong type: got %v, want ErrWrongCPType", err)
	}
}

func TestGetCheckedIndexZero(t *testing.T) {
	cp := buildPool(t, 1, nil)
	_, err := GetChecked(cp, Pointer[Utf8Entry](0))
	if !errors.Is(err, ErrInvalidCPIndex) {
		t.Fatalf("GetChecked(0): got %v, want ErrInvalidCPIndex", err)
	}
}

func TestGetPanicsOnBadIndex(t *testing.T) {
	cp := buildPool(t, 1, nil)
	defer func() {
		if recover() == nil {
			t.Fatal("Get on an invalid pointer did not panic")
		}
	}()
	Get(cp, Pointer[Utf8Entry](5))
}

func TestMethodHandleReferenceKindValidation(t *testing.T) {
	body := []byte{
		tagUtf8, 0x00, 0x01, 'x', // slot 1
		tagMethodHandle, 0x09, 0x00, 0x01, // kind=9 (InvokeInterface), ref -> slot 1 (wrong type but kind is valid)
	}
	cp := buildPool(t, 3, body)
	mh := Get(cp, Pointer[MethodHandleEntry](2))
	if mh.Kind != RefInvokeInterface {
		t.Fatalf("kind = %d, want RefInvokeInterface", mh.Kind)
	}

	badBody := []byte{
		tagMethodHandle, 0x00, 0x00, 0x01, // kind=0 is not in 1..9
	}
	if _, err := decodeConstantPool(newCursor(badBody), 2); err == nil {
		t.Fatal("decodeConstantPool with invalid method handle kind: want error, got nil")
	}
}

func TestConstantPoolDiffWithGoCmp(t *testing.T) {
	bodyA := []byte{tagUtf8, 0x00, 0x01, 'a'}
	bodyB := []byte{tagUtf8, 0x00, 0x01, 'b'}
	a := buildPool(t, 2, bodyA)
	b := buildPool(t, 2, bodyB)

	diff := cmp.Diff(a, b, cmp.AllowUnexported(ConstantPool{}, Utf8Entry{}))
	if diff == "" {
		t.Fatal("expected a diff between pools holding different Utf8 bytes")
	}
}
