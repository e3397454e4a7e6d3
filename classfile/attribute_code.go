/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// The Code attribute (JVMS 4.7.3): max stack/locals, the raw bytecode
// slice, the exception table, and nested attributes in one record.

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType Pointer[ClassEntry] // zero: catches every throwable (finally blocks)
}

// CodeAttribute holds a method body. Code is a borrowed view into the
// class file's bytes — this decoder never copies or interprets it (no
// bytecode execution); resolving individual instruction lengths within
// Code is InstructionLength (opcode.go).
type CodeAttribute struct {
	NameStr        string
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute
}

func (a CodeAttribute) AttributeName() string { return a.NameStr }

func decodeCodeAttribute(c *cursor, cp *ConstantPool, name string) (Attribute, error) {
	maxStack, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Code max_stack")
	}
	maxLocals, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Code max_locals")
	}
	codeLen, err := c.readU32()
	if err != nil {
		return nil, errors.Wrap(err, "Code code_length")
	}
	if codeLen == 0 {
		return nil, errClassFormat("Code attribute's code_length must be greater than zero")
	}
	code, err := c.readBytes(int(codeLen))
	if err != nil {
		return nil, errors.Wrap(err, "Code code")
	}

	excCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Code exception_table_length")
	}
	excTable := make([]ExceptionTableEntry, excCount)
	for i := range excTable {
		var e ExceptionTableEntry
		if e.StartPC, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "Code exception_table %d start_pc", i)
		}
		if e.EndPC, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "Code exception_table %d end_pc", i)
		}
		if e.HandlerPC, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "Code exception_table %d handler_pc", i)
		}
		if e.CatchType, err = readPointer[ClassEntry](c); err != nil {
			return nil, errors.Wrapf(err, "Code exception_table %d catch_type", i)
		}
		excTable[i] = e
	}

	attrCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Code attributes_count")
	}
	attrs, err := decodeAttributes(c, cp, attrCount)
	if err != nil {
		return nil, errors.Wrap(err, "Code attributes")
	}

	return CodeAttribute{
		NameStr:        name,
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}
