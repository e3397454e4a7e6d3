/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// Tag identifies a constant pool entry variant by its on-disk tag byte.
// tagAbsent (0) is not a wire value; it marks the reserved index-0 slot
// and the unusable second slot that follows every Long/Double entry.
type Tag byte

const (
	TagUtf8               Tag = tagUtf8
	TagInteger            Tag = tagInteger
	TagFloat              Tag = tagFloat
	TagLong               Tag = tagLong
	TagDouble             Tag = tagDouble
	TagClass              Tag = tagClass
	TagString             Tag = tagString
	TagFieldref           Tag = tagFieldRef
	TagMethodref          Tag = tagMethodRef
	TagInterfaceMethodref Tag = tagInterfaceMethodRef
	TagNameAndType        Tag = tagNameAndType
	TagMethodHandle       Tag = tagMethodHandle
	TagMethodType         Tag = tagMethodType
	TagDynamic            Tag = tagDynamic
	TagInvokeDynamic      Tag = tagInvokeDynamic
	TagModule             Tag = tagModule
	TagPackage            Tag = tagPackage
	tagAbsent             Tag = 0
)

// Entry is the sum type over the ~15 constant pool entry variants (plus
// the internal absent placeholder). Implemented by value types below;
// a discriminated union via an interface + explicit tag method rather
// than an inheritance hierarchy.
type Entry interface {
	cpTag() Tag
}

// Pointer is a 16-bit constant-pool index carrying a compile-time tag
// recording which Entry variant its target is expected to be. It is
// exactly the size of a bare uint16; the type parameter never appears
// in the runtime representation, only in the signature of
// Get/GetChecked.
type Pointer[T Entry] uint16

// Index returns the raw constant-pool index this pointer carries.
func (p Pointer[T]) Index() uint16 { return uint16(p) }

// IsZero reports whether this pointer is the raw index 0, which denotes
// deliberate absence at semantically optional sites (super-class,
// enclosing method, catch-all exception handler, ...).
func (p Pointer[T]) IsZero() bool { return p == 0 }

// ---- concrete entry variants ----

type Utf8Entry struct{ Bytes []byte } // borrowed; modified UTF-8, not decoded to a native string

type IntegerEntry struct{ Bits uint32 }
type FloatEntry struct{ Bits uint32 }
type LongEntry struct{ High, Low uint32 }
type DoubleEntry struct{ High, Low uint32 }

type ClassEntry struct{ Name Pointer[Utf8Entry] }
type StringEntry struct{ Value Pointer[Utf8Entry] }

// RefEntry is the shared shape of FieldRef/MethodRef/InterfaceMethodRef:
// same fields, but each must be preserved as a distinct variant.
// FieldrefEntry/MethodrefEntry/InterfaceMethodrefEntry wrap it as
// distinct named types so cpTag() (and therefore Get[T]) can tell them
// apart.
type RefEntry struct {
	Class       Pointer[ClassEntry]
	NameAndType Pointer[NameAndTypeEntry]
}

type FieldrefEntry struct{ RefEntry }
type MethodrefEntry struct{ RefEntry }
type InterfaceMethodrefEntry struct{ RefEntry }

type NameAndTypeEntry struct {
	Name       Pointer[Utf8Entry]
	Descriptor Pointer[Utf8Entry]
}

// ReferenceKind is the 1-byte method handle kind (JVMS 4.4.8).
type ReferenceKind byte

const (
	RefGetField         ReferenceKind = 1
	RefGetStatic        ReferenceKind = 2
	RefPutField         ReferenceKind = 3
	RefPutStatic        ReferenceKind = 4
	RefInvokeVirtual    ReferenceKind = 5
	RefInvokeStatic     ReferenceKind = 6
	RefInvokeSpecial    ReferenceKind = 7
	RefNewInvokeSpecial ReferenceKind = 8
	RefInvokeInterface  ReferenceKind = 9
)

func (k ReferenceKind) valid() bool { return k >= RefGetField && k <= RefInvokeInterface }

// MethodHandleEntry's Reference pointer is constrained by Kind per the
// JVMS table: GetField/GetStatic/PutField/PutStatic point to a
// Fieldref; InvokeVirtual/InvokeStatic/InvokeSpecial/NewInvokeSpecial
// point to a Methodref (or, for the latter two from class file version
// 52 on, an InterfaceMethodref); InvokeInterface points to an
// InterfaceMethodref. Because the variant is kind-dependent rather than
// fixed, the pointer is typed against the Entry interface itself and
// resolved with a type switch at the call site instead of Get[T]
// against one concrete type.
type MethodHandleEntry struct {
	Kind      ReferenceKind
	Reference Pointer[Entry]
}

type MethodTypeEntry struct{ Descriptor Pointer[Utf8Entry] }

type DynamicEntry struct {
	BootstrapMethodAttrIndex uint16
	NameAndType              Pointer[NameAndTypeEntry]
}

type InvokeDynamicEntry struct {
	BootstrapMethodAttrIndex uint16
	NameAndType              Pointer[NameAndTypeEntry]
}

type ModuleEntry struct{ Name Pointer[Utf8Entry] }
type PackageEntry struct{ Name Pointer[Utf8Entry] }

// absentEntry occupies index 0 and the unusable second slot following
// every Long/Double entry. It must never be dereferenced; lookup()
// rejects it with ErrInvalidCPIndex.
type absentEntry struct{}

func (Utf8Entry) cpTag() Tag               { return TagUtf8 }
func (IntegerEntry) cpTag() Tag            { return TagInteger }
func (FloatEntry) cpTag() Tag              { return TagFloat }
func (LongEntry) cpTag() Tag               { return TagLong }
func (DoubleEntry) cpTag() Tag             { return TagDouble }
func (ClassEntry) cpTag() Tag              { return TagClass }
func (StringEntry) cpTag() Tag             { return TagString }
func (FieldrefEntry) cpTag() Tag           { return TagFieldref }
func (MethodrefEntry) cpTag() Tag          { return TagMethodref }
func (InterfaceMethodrefEntry) cpTag() Tag { return TagInterfaceMethodref }
func (NameAndTypeEntry) cpTag() Tag        { return TagNameAndType }
func (MethodHandleEntry) cpTag() Tag       { return TagMethodHandle }
func (MethodTypeEntry) cpTag() Tag         { return TagMethodType }
func (DynamicEntry) cpTag() Tag            { return TagDynamic }
func (InvokeDynamicEntry) cpTag() Tag      { return TagInvokeDynamic }
func (ModuleEntry) cpTag() Tag             { return TagModule }
func (PackageEntry) cpTag() Tag            { return TagPackage }
func (absentEntry) cpTag() Tag             { return tagAbsent }

// ConstantPool is the 1-indexed, borrow-free table of constants a class
// file carries. Index 0 and Long/Double's trailing slot hold an
// internal absentEntry and are never exposed through Get/GetChecked.
type ConstantPool struct {
	entries []Entry
}

// Count returns n from the header: the logical slot count including the
// reserved index 0 (so valid indices are 1..Count()-1).
func (cp *ConstantPool) Count() int { return len(cp.entries) }

// Tag reports the wire tag of the entry at idx, or tagAbsent if idx is
// out of range or lands on the reserved/placeholder slot. Lets callers
// branch on a constant's kind without importing every concrete Entry
// type.
func (cp *ConstantPool) Tag(idx uint16) Tag {
	if int(idx) >= len(cp.entries) {
		return tagAbsent
	}
	return cp.entries[idx].cpTag()
}

func (cp *ConstantPool) lookup(idx uint16) (Entry, error) {
	if idx == 0 {
		return nil, errors.Wrap(ErrInvalidCPIndex, "index 0 denotes absence and must not be dereferenced")
	}
	if int(idx) >= len(cp.entries) {
		return nil, errors.Wrapf(ErrInvalidCPIndex, "index %d exceeds constant pool size %d", idx, len(cp.entries))
	}
	e := cp.entries[idx]
	if _, absent := e.(absentEntry); absent {
		return nil, errors.Wrapf(ErrInvalidCPIndex, "index %d is the unusable slot after a Long/Double", idx)
	}
	return e, nil
}

// Get dereferences p, panicking if the target is absent, out of range,
// or a different variant than T. Fast path for call sites that have
// already established (e.g. by construction) that p must resolve.
func Get[T Entry](cp *ConstantPool, p Pointer[T]) T {
	v, err := GetChecked(cp, p)
	if err != nil {
		panic(err)
	}
	return v
}

// GetChecked dereferences p, returning ErrInvalidCPIndex or ErrWrongCPType
// instead of panicking.
func GetChecked[T Entry](cp *ConstantPool, p Pointer[T]) (T, error) {
	var zero T
	e, err := cp.lookup(uint16(p))
	if err != nil {
		return zero, err
	}
	t, ok := e.(T)
	if !ok {
		return zero, errors.Wrapf(ErrWrongCPType, "index %d holds tag %d, not %d", uint16(p), e.cpTag(), zero.cpTag())
	}
	return t, nil
}

// GetEntry dereferences a Pointer[Entry] (used for MethodHandle
// references, whose variant depends on the reference kind) without
// narrowing to one concrete type.
func GetEntry(cp *ConstantPool, p Pointer[Entry]) (Entry, error) {
	return cp.lookup(uint16(p))
}

// Utf8 returns the raw (modified-UTF-8, undecoded) bytes of a Utf8
// pointer, or an error via the checked accessor.
func (cp *ConstantPool) Utf8(p Pointer[Utf8Entry]) ([]byte, error) {
	e, err := GetChecked(cp, p)
	if err != nil {
		return nil, err
	}
	return e.Bytes, nil
}

// decodeConstantPool decodes exactly n-1 logical entries given the pool
// count n from the header, leaving index 0 and every Long/Double's
// second slot as absentEntry.
func decodeConstantPool(c *cursor, count uint16) (*ConstantPool, error) {
	if count == 0 {
		return nil, errors.New("constant pool count must be at least 1 (for the reserved slot)")
	}
	entries := make([]Entry, count)
	entries[0] = absentEntry{}

	for i := 1; i < int(count); i++ {
		tagByte, err := c.readU8()
		if err != nil {
			return nil, errors.Wrapf(err, "constant pool entry %d tag", i)
		}
		entry, wide, err := decodeEntry(c, Tag(tagByte))
		if err != nil {
			return nil, errors.Wrapf(err, "constant pool entry %d (tag %d)", i, tagByte)
		}
		entries[i] = entry
		tracef("cp[%d] = %T", i, entry)
		if wide {
			i++
			if i < int(count) {
				entries[i] = absentEntry{}
			}
		}
	}
	return &ConstantPool{entries: entries}, nil
}

// decodeEntry decodes the payload for one tag. wide reports whether the
// tag consumes two pool slots (Long/Double).
func decodeEntry(c *cursor, tag Tag) (Entry, bool, error) {
	switch tag {
	case TagUtf8:
		n, err := c.readU16()
		if err != nil {
			return nil, false, errors.Wrap(err, "utf8 length")
		}
		b, err := c.readBytes(int(n))
		if err != nil {
			return nil, false, errors.Wrap(err, "utf8 bytes")
		}
		return Utf8Entry{Bytes: b}, false, nil

	case TagInteger:
		v, err := c.readU32()
		if err != nil {
			return nil, false, errors.Wrap(err, "integer bits")
		}
		return IntegerEntry{Bits: v}, false, nil

	case TagFloat:
		v, err := c.readU32()
		if err != nil {
			return nil, false, errors.Wrap(err, "float bits")
		}
		return FloatEntry{Bits: v}, false, nil

	case TagLong:
		hi, err := c.readU32()
		if err != nil {
			return nil, false, errors.Wrap(err, "long high bits")
		}
		lo, err := c.readU32()
		if err != nil {
			return nil, false, errors.Wrap(err, "long low bits")
		}
		return LongEntry{High: hi, Low: lo}, true, nil

	case TagDouble:
		hi, err := c.readU32()
		if err != nil {
			return nil, false, errors.Wrap(err, "double high bits")
		}
		lo, err := c.readU32()
		if err != nil {
			return nil, false, errors.Wrap(err, "double low bits")
		}
		return DoubleEntry{High: hi, Low: lo}, true, nil

	case TagClass:
		p, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "class name pointer")
		}
		return ClassEntry{Name: p}, false, nil

	case TagString:
		p, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "string value pointer")
		}
		return StringEntry{Value: p}, false, nil

	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		classPtr, err := readPointer[ClassEntry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "ref class pointer")
		}
		ntPtr, err := readPointer[NameAndTypeEntry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "ref name-and-type pointer")
		}
		ref := RefEntry{Class: classPtr, NameAndType: ntPtr}
		switch tag {
		case TagFieldref:
			return FieldrefEntry{ref}, false, nil
		case TagMethodref:
			return MethodrefEntry{ref}, false, nil
		default:
			return InterfaceMethodrefEntry{ref}, false, nil
		}

	case TagNameAndType:
		namePtr, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "name-and-type name pointer")
		}
		descPtr, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "name-and-type descriptor pointer")
		}
		return NameAndTypeEntry{Name: namePtr, Descriptor: descPtr}, false, nil

	case TagMethodHandle:
		kindByte, err := c.readU8()
		if err != nil {
			return nil, false, errors.Wrap(err, "method handle reference kind")
		}
		kind := ReferenceKind(kindByte)
		if !kind.valid() {
			return nil, false, errors.Errorf("invalid method handle reference kind %d", kindByte)
		}
		refPtr, err := readPointer[Entry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "method handle reference pointer")
		}
		return MethodHandleEntry{Kind: kind, Reference: refPtr}, false, nil

	case TagMethodType:
		p, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "method type descriptor pointer")
		}
		return MethodTypeEntry{Descriptor: p}, false, nil

	case TagDynamic, TagInvokeDynamic:
		bsmIdx, err := c.readU16()
		if err != nil {
			return nil, false, errors.Wrap(err, "bootstrap method attr index")
		}
		ntPtr, err := readPointer[NameAndTypeEntry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "dynamic name-and-type pointer")
		}
		if tag == TagDynamic {
			return DynamicEntry{BootstrapMethodAttrIndex: bsmIdx, NameAndType: ntPtr}, false, nil
		}
		return InvokeDynamicEntry{BootstrapMethodAttrIndex: bsmIdx, NameAndType: ntPtr}, false, nil

	case TagModule:
		p, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "module name pointer")
		}
		return ModuleEntry{Name: p}, false, nil

	case TagPackage:
		p, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, false, errors.Wrap(err, "package name pointer")
		}
		return PackageEntry{Name: p}, false, nil

	default:
		return nil, false, errors.Errorf("unrecognized constant pool tag %d", tag)
	}
}

func readPointer[T Entry](c *cursor) (Pointer[T], error) {
	v, err := c.readU16()
	if err != nil {
		return 0, err
	}
	return Pointer[T](v), nil
}
