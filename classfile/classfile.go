/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// The top-level class file assembler (JVMS 4.1): walks the fixed
// sequence — header, constant pool, access flags, this/super,
// interfaces, fields, methods, class-level attributes — in one linear
// pass with no backtracking.

// ClassFile is the fully decoded structure of one .class file. Every
// borrowed byte slice reachable from it (Utf8 bytes, Code bytes,
// SourceDebugExtension bytes) aliases the buffer passed to Decode and
// must not outlive it.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool *ConstantPool
	AccessFlags  uint16
	This         Pointer[ClassEntry]
	Super        Pointer[ClassEntry] // zero only for java/lang/Object
	Interfaces   []Pointer[ClassEntry]
	Fields       []Field
	Methods      []Method
	Attributes   []Attribute
}

type Field struct {
	AccessFlags uint16
	Name        Pointer[Utf8Entry]
	Descriptor  Pointer[Utf8Entry]
	Attributes  []Attribute
}

type Method struct {
	AccessFlags uint16
	Name        Pointer[Utf8Entry]
	Descriptor  Pointer[Utf8Entry]
	Attributes  []Attribute
}

// Decode parses a complete .class file out of b. b is borrowed: the
// returned ClassFile (and anything reachable from it) aliases b and
// must not be used after b is modified or freed.
//
// Decode reads exactly as much as the format specifies and does not
// require b to be fully consumed — trailing bytes past the final
// class-level attribute are accepted silently, matching how real JVMs
// tolerate appended signature/manifest data.
func Decode(b []byte) (*ClassFile, error) {
	c := newCursor(b)

	magic, err := c.readU32()
	if err != nil {
		return nil, errors.Wrap(err, "magic")
	}
	if magic != MagicNumber {
		return nil, errors.Wrapf(ErrInvalidHeader, "got 0x%08X, want 0x%08X", magic, MagicNumber)
	}

	minor, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "minor_version")
	}
	major, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "major_version")
	}
	if major < MinSupportedMajor || major > MaxMajorVersion {
		return nil, errors.Wrapf(ErrInvalidMajorVersion, "%d (supported range %d..%d)", major, MinSupportedMajor, MaxMajorVersion)
	}
	tracef("class file version %d.%d", major, minor)

	poolCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "constant_pool_count")
	}
	cp, err := decodeConstantPool(c, poolCount)
	if err != nil {
		return nil, errors.Wrap(err, "constant_pool")
	}

	accessFlags, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "access_flags")
	}
	if !validFlags(accessFlags, maskClass) {
		return nil, errors.Wrapf(ErrInvalidAccessFlags, "class access_flags: 0x%04X", accessFlags)
	}

	this, err := readPointer[ClassEntry](c)
	if err != nil {
		return nil, errors.Wrap(err, "this_class")
	}
	super, err := readPointer[ClassEntry](c)
	if err != nil {
		return nil, errors.Wrap(err, "super_class")
	}

	interfaces, err := decodePointerList[ClassEntry](c)
	if err != nil {
		return nil, errors.Wrap(err, "interfaces")
	}

	fieldsCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "fields_count")
	}
	fields := make([]Field, fieldsCount)
	for i := range fields {
		fields[i], err = decodeField(c, cp)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i)
		}
	}

	methodsCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "methods_count")
	}
	methods := make([]Method, methodsCount)
	for i := range methods {
		methods[i], err = decodeMethod(c, cp)
		if err != nil {
			return nil, errors.Wrapf(err, "method %d", i)
		}
	}

	attrsCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "attributes_count")
	}
	attrs, err := decodeAttributes(c, cp, attrsCount)
	if err != nil {
		return nil, errors.Wrap(err, "class attributes")
	}

	tracef("decoded class file: %d fields, %d methods, %d attributes", fieldsCount, methodsCount, attrsCount)

	return &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: cp,
		AccessFlags:  accessFlags,
		This:         this,
		Super:        super,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attrs,
	}, nil
}

func decodeField(c *cursor, cp *ConstantPool) (Field, error) {
	flags, err := c.readU16()
	if err != nil {
		return Field{}, errors.Wrap(err, "access_flags")
	}
	if !validFlags(flags, maskField) {
		return Field{}, errors.Wrapf(ErrInvalidAccessFlags, "field access_flags: 0x%04X", flags)
	}
	name, err := readPointer[Utf8Entry](c)
	if err != nil {
		return Field{}, errors.Wrap(err, "name_index")
	}
	desc, err := readPointer[Utf8Entry](c)
	if err != nil {
		return Field{}, errors.Wrap(err, "descriptor_index")
	}
	descBytes, err := cp.Utf8(desc)
	if err != nil {
		return Field{}, errors.Wrap(err, "descriptor")
	}
	if err := validateFieldDesc(string(descBytes)); err != nil {
		return Field{}, err
	}
	attrCount, err := c.readU16()
	if err != nil {
		return Field{}, errors.Wrap(err, "attributes_count")
	}
	attrs, err := decodeAttributes(c, cp, attrCount)
	if err != nil {
		return Field{}, errors.Wrap(err, "attributes")
	}
	return Field{AccessFlags: flags, Name: name, Descriptor: desc, Attributes: attrs}, nil
}

func decodeMethod(c *cursor, cp *ConstantPool) (Method, error) {
	flags, err := c.readU16()
	if err != nil {
		return Method{}, errors.Wrap(err, "access_flags")
	}
	if !validFlags(flags, maskMethod) {
		return Method{}, errors.Wrapf(ErrInvalidAccessFlags, "method access_flags: 0x%04X", flags)
	}
	name, err := readPointer[Utf8Entry](c)
	if err != nil {
		return Method{}, errors.Wrap(err, "name_index")
	}
	desc, err := readPointer[Utf8Entry](c)
	if err != nil {
		return Method{}, errors.Wrap(err, "descriptor_index")
	}
	descBytes, err := cp.Utf8(desc)
	if err != nil {
		return Method{}, errors.Wrap(err, "descriptor")
	}
	if err := validateMethodDesc(string(descBytes)); err != nil {
		return Method{}, err
	}
	attrCount, err := c.readU16()
	if err != nil {
		return Method{}, errors.Wrap(err, "attributes_count")
	}
	attrs, err := decodeAttributes(c, cp, attrCount)
	if err != nil {
		return Method{}, errors.Wrap(err, "attributes")
	}
	return Method{AccessFlags: flags, Name: name, Descriptor: desc, Attributes: attrs}, nil
}
