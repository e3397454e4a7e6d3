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

func TestDecodeAnnotationSimple(t *testing.T) {
	// type_index=1, 1 pair: name_index=2, value = int const_value_index=3
	b := []byte{
		0x00, 0x01, // type_index
		0x00, 0x01, // num_element_value_pairs
		0x00, 0x02, // element_name_index
		byte(EVInt), 0x00, 0x03, // const_value_index
	}
	ann, err := decodeAnnotation(newCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	if ann.Type.Index() != 1 {
		t.Fatalf("Type = %d, want 1", ann.Type.Index())
	}
	if len(ann.ElementValuePairs) != 1 {
		t.Fatalf("len(ElementValuePairs) = %d, want 1", len(ann.ElementValuePairs))
	}
	pair := ann.ElementValuePairs[0]
	if pair.Value.Tag != EVInt || pair.Value.ConstValue.Index() != 3 {
		t.Fatalf("value = %+v, want EVInt referencing const #3", pair.Value)
	}
}

func TestDecodeElementValueNestedArray(t *testing.T) {
	// array of 2 ints
	b := []byte{
		byte(EVArray), 0x00, 0x02,
		byte(EVInt), 0x00, 0x01,
		byte(EVInt), 0x00, 0x02,
	}
	v, err := decodeElementValue(newCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	if v.Tag != EVArray || len(v.ArrayValues) != 2 {
		t.Fatalf("got %+v, want array of 2", v)
	}
}

func TestDecodeElementValueEnum(t *testing.T) {
	b := []byte{byte(EVEnum), 0x00, 0x01, 0x00, 0x02}
	v, err := decodeElementValue(newCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	if v.EnumTypeName.Index() != 1 || v.EnumConstName.Index() != 2 {
		t.Fatalf("got %+v", v)
	}
}

func TestDecodeElementValueUnknownTag(t *testing.T) {
	_, err := decodeElementValue(newCursor([]byte{'?'}))
	if !errors.Is(err, ErrUnknownElementValueTag) {
		t.Fatalf("got %v, want ErrUnknownElementValueTag", err)
	}
}

func TestDecodeTypeAnnotationOffsetTarget(t *testing.T) {
	// target_type = TTInstanceof (offset_target), path_length=0,
	// type_index=1, 0 pairs.
	b := []byte{
		byte(TTInstanceof),
		0x00, 0x07, // offset
		0x00,       // path_length = 0
		0x00, 0x01, // type_index
		0x00, 0x00, // num_element_value_pairs
	}
	ta, err := decodeTypeAnnotation(newCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	if ta.Target.Offset != 7 {
		t.Fatalf("Target.Offset = %d, want 7", ta.Target.Offset)
	}
}

func TestDecodeTypeAnnotationInvalidTargetType(t *testing.T) {
	_, err := decodeTypeAnnotation(newCursor([]byte{0xFF}))
	if !errors.Is(err, ErrInvalidTargetType) {
		t.Fatalf("got %v, want ErrInvalidTargetType", err)
	}
}

func TestDecodeTypePathInvalidKind(t *testing.T) {
	b := []byte{0x01, 0x07, 0x00}
	_, err := decodeTypePath(newCursor(b))
	if !errors.Is(err, ErrInvalidPathKind) {
		t.Fatalf("got %v, want ErrInvalidPathKind", err)
	}
}

func TestDecodeTypePathValid(t *testing.T) {
	// 2 entries: (Array, 0), (TypeArgument, 3)
	b := []byte{0x02, 0x00, 0x00, 0x03, 0x03}
	path, err := decodeTypePath(newCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 2 || path[1].Kind != PathTypeArgument || path[1].TypeArgumentIndex != 3 {
		t.Fatalf("got %+v", path)
	}
}

func TestDecodeLocalVarTarget(t *testing.T) {
	b := []byte{
		0x00, 0x01, // table_length
		0x00, 0x00, 0x00, 0x05, 0x00, 0x02, // start_pc, length, index
	}
	ti, err := decodeTargetInfo(newCursor(b), TTLocalVariable)
	if err != nil {
		t.Fatal(err)
	}
	if len(ti.LocalVarTable) != 1 || ti.LocalVarTable[0].Length != 5 || ti.LocalVarTable[0].Index != 2 {
		t.Fatalf("got %+v", ti)
	}
}
