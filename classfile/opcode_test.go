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

func TestInstructionLengthFixedOperand(t *testing.T) {
	// invokevirtual (0xB6) takes a 2-byte operand.
	code := []byte{byte(OpInvokevirtual), 0x00, 0x01}
	n, err := InstructionLength(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("InstructionLength = %d, want 3", n)
	}
}

func TestInstructionLengthZeroOperand(t *testing.T) {
	code := []byte{byte(OpNop)}
	n, err := InstructionLength(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("InstructionLength = %d, want 1", n)
	}
}

// TestTableswitchLength checks a tableswitch at code offset 1 with
// default=0, low=0, high=3, which occupies 1 + 2 + 12 + 16 = 31 bytes.
func TestTableswitchLength(t *testing.T) {
	code := make([]byte, 32)
	code[1] = byte(OpTableswitch)
	// padding at code[2], code[3] (2 bytes to reach 4-byte alignment
	// relative to code offset 1: (1+1)=2, pad = (4-2%4)%4 = 2)
	writeI32 := func(pos int, v int32) {
		code[pos] = byte(v >> 24)
		code[pos+1] = byte(v >> 16)
		code[pos+2] = byte(v >> 8)
		code[pos+3] = byte(v)
	}
	base := 1 + 1 + 2 // opcode + pad
	writeI32(base, 0)    // default
	writeI32(base+4, 0)  // low
	writeI32(base+8, 3)  // high
	// 4 jump offsets follow, left zero.

	n, err := InstructionLength(code, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 31 {
		t.Fatalf("tableswitch length = %d, want 31", n)
	}
}

func TestLookupswitchLength(t *testing.T) {
	// lookupswitch at offset 0: default(4) + npairs(4)=2 + 2*8 = 8+4+16=28
	// padding at offset 0 is (4 - 1%4)%4 = 3
	code := make([]byte, 32)
	code[0] = byte(OpLookupswitch)
	pos := 1 + 3
	writeI32At := func(p int, v int32) {
		code[p] = byte(v >> 24)
		code[p+1] = byte(v >> 16)
		code[p+2] = byte(v >> 8)
		code[p+3] = byte(v)
	}
	writeI32At(pos, 0)   // default
	writeI32At(pos+4, 2) // npairs = 2

	n, err := InstructionLength(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := 1 + 3 + 8 + 2*8
	if n != want {
		t.Fatalf("lookupswitch length = %d, want %d", n, want)
	}
}

func TestWideIincLength(t *testing.T) {
	code := []byte{byte(OpWide), byte(OpIinc), 0x00, 0x01, 0x00, 0x02}
	n, err := InstructionLength(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Fatalf("wide iinc length = %d, want 6", n)
	}
}

func TestWideNonIincLength(t *testing.T) {
	code := []byte{byte(OpWide), byte(OpIload), 0x00, 0x01}
	n, err := InstructionLength(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("wide iload length = %d, want 4", n)
	}
}

func TestReservedOpcodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("InstructionLength on a reserved opcode did not panic")
		}
	}()
	InstructionLength([]byte{byte(OpBreakpoint)}, 0)
}

func TestUnknownOpcodeError(t *testing.T) {
	_, err := InstructionLength([]byte{0xCB}, 0)
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Fatalf("got %v, want ErrUnknownOpcode", err)
	}
}

func TestOpcodeMnemonics(t *testing.T) {
	cases := map[Opcode]string{
		OpAload0:        "aload_0",
		OpInvokevirtual: "invokevirtual",
		OpGotoW:         "goto_w",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", op, got, want)
		}
	}
}
