/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// Attribute decoding (JVMS 4.7). Every attribute is dispatched by the
// *name string*, not a wire tag, because the format has no tag byte for
// attributes — the name resolved from attribute_name_index against the
// constant pool is the only discriminator.
//
// Converting the name to a Go string (rather than keeping it borrowed)
// is a deliberate, narrow exception to the "no modified-UTF-8
// decoding" rule elsewhere in this package: attribute names are always
// one of a fixed set of ASCII identifiers defined by the JVMS, never
// user content, and every reader of this format compares them as
// strings to dispatch.
type Attribute interface {
	AttributeName() string
}

// UnknownAttribute preserves any attribute this decoder does not give
// a dedicated shape to (a vendor extension, or one a future JVMS
// version adds): the raw info bytes, borrowed from the input.
type UnknownAttribute struct {
	NameStr string
	Data    []byte
}

func (a UnknownAttribute) AttributeName() string { return a.NameStr }

const (
	attrConstantValue                        = "ConstantValue"
	attrCode                                 = "Code"
	attrStackMapTable                        = "StackMapTable"
	attrExceptions                           = "Exceptions"
	attrInnerClasses                         = "InnerClasses"
	attrEnclosingMethod                      = "EnclosingMethod"
	attrSynthetic                            = "Synthetic"
	attrSignature                            = "Signature"
	attrSourceFile                           = "SourceFile"
	attrSourceDebugExtension                 = "SourceDebugExtension"
	attrLineNumberTable                      = "LineNumberTable"
	attrLocalVariableTable                   = "LocalVariableTable"
	attrLocalVariableTypeTable               = "LocalVariableTypeTable"
	attrDeprecated                           = "Deprecated"
	attrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	attrRuntimeInvisibleAnnotations          = "RuntimeInvisibleAnnotations"
	attrRuntimeVisibleParameterAnnotations   = "RuntimeVisibleParameterAnnotations"
	attrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
	attrRuntimeVisibleTypeAnnotations        = "RuntimeVisibleTypeAnnotations"
	attrRuntimeInvisibleTypeAnnotations      = "RuntimeInvisibleTypeAnnotations"
	attrAnnotationDefault                    = "AnnotationDefault"
	attrBootstrapMethods                     = "BootstrapMethods"
	attrMethodParameters                     = "MethodParameters"
	attrModule                               = "Module"
	attrModulePackages                       = "ModulePackages"
	attrModuleMainClass                      = "ModuleMainClass"
	attrNestHost                             = "NestHost"
	attrNestMembers                          = "NestMembers"
	attrRecord                               = "Record"
	attrPermittedSubclasses                  = "PermittedSubclasses"
)

// decodeAttributes reads a u2 attribute count followed by that many
// attribute_info structures, dispatching each by its resolved name.
func decodeAttributes(c *cursor, cp *ConstantPool, count uint16) ([]Attribute, error) {
	attrs := make([]Attribute, count)
	for i := range attrs {
		a, err := decodeAttribute(c, cp)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %d", i)
		}
		attrs[i] = a
	}
	return attrs, nil
}

func decodeAttribute(c *cursor, cp *ConstantPool) (Attribute, error) {
	namePtr, err := readPointer[Utf8Entry](c)
	if err != nil {
		return nil, errors.Wrap(err, "attribute_name_index")
	}
	length, err := c.readU32()
	if err != nil {
		return nil, errors.Wrap(err, "attribute_length")
	}
	body, err := c.sub(int(length))
	if err != nil {
		return nil, errors.Wrap(err, "attribute_info body")
	}
	nameBytes, err := cp.Utf8(namePtr)
	if err != nil {
		return nil, errors.Wrap(err, "attribute name")
	}
	name := string(nameBytes)

	tracef("attribute %s (%d bytes)", name, length)

	switch name {
	case attrConstantValue:
		return decodeConstantValueAttribute(body, name)
	case attrCode:
		return decodeCodeAttribute(body, cp, name)
	case attrStackMapTable:
		frames, err := decodeStackMapFrames(body)
		if err != nil {
			return nil, errors.Wrap(err, attrStackMapTable)
		}
		return StackMapTableAttribute{NameStr: name, Frames: frames}, nil
	case attrExceptions:
		return decodeExceptionsAttribute(body, name)
	case attrInnerClasses:
		return decodeInnerClassesAttribute(body, name)
	case attrEnclosingMethod:
		return decodeEnclosingMethodAttribute(body, name)
	case attrSynthetic:
		return SyntheticAttribute{NameStr: name}, nil
	case attrSignature:
		p, err := readPointer[Utf8Entry](body)
		if err != nil {
			return nil, errors.Wrap(err, attrSignature)
		}
		return SignatureAttribute{NameStr: name, Signature: p}, nil
	case attrSourceFile:
		p, err := readPointer[Utf8Entry](body)
		if err != nil {
			return nil, errors.Wrap(err, attrSourceFile)
		}
		return SourceFileAttribute{NameStr: name, SourceFile: p}, nil
	case attrSourceDebugExtension:
		data, err := body.readBytes(body.remaining())
		if err != nil {
			return nil, errors.Wrap(err, attrSourceDebugExtension)
		}
		return SourceDebugExtensionAttribute{NameStr: name, DebugExtension: data}, nil
	case attrLineNumberTable:
		return decodeLineNumberTableAttribute(body, name)
	case attrLocalVariableTable:
		return decodeLocalVariableTableAttribute(body, name)
	case attrLocalVariableTypeTable:
		return decodeLocalVariableTypeTableAttribute(body, name)
	case attrDeprecated:
		return DeprecatedAttribute{NameStr: name}, nil
	case attrRuntimeVisibleAnnotations:
		anns, err := decodeAnnotations(body)
		if err != nil {
			return nil, errors.Wrap(err, attrRuntimeVisibleAnnotations)
		}
		return RuntimeVisibleAnnotationsAttribute{NameStr: name, Annotations: anns}, nil
	case attrRuntimeInvisibleAnnotations:
		anns, err := decodeAnnotations(body)
		if err != nil {
			return nil, errors.Wrap(err, attrRuntimeInvisibleAnnotations)
		}
		return RuntimeInvisibleAnnotationsAttribute{NameStr: name, Annotations: anns}, nil
	case attrRuntimeVisibleParameterAnnotations:
		params, err := decodeParameterAnnotations(body)
		if err != nil {
			return nil, errors.Wrap(err, attrRuntimeVisibleParameterAnnotations)
		}
		return RuntimeVisibleParameterAnnotationsAttribute{NameStr: name, Parameters: params}, nil
	case attrRuntimeInvisibleParameterAnnotations:
		params, err := decodeParameterAnnotations(body)
		if err != nil {
			return nil, errors.Wrap(err, attrRuntimeInvisibleParameterAnnotations)
		}
		return RuntimeInvisibleParameterAnnotationsAttribute{NameStr: name, Parameters: params}, nil
	case attrRuntimeVisibleTypeAnnotations:
		anns, err := decodeTypeAnnotations(body)
		if err != nil {
			return nil, errors.Wrap(err, attrRuntimeVisibleTypeAnnotations)
		}
		return RuntimeVisibleTypeAnnotationsAttribute{NameStr: name, Annotations: anns}, nil
	case attrRuntimeInvisibleTypeAnnotations:
		anns, err := decodeTypeAnnotations(body)
		if err != nil {
			return nil, errors.Wrap(err, attrRuntimeInvisibleTypeAnnotations)
		}
		return RuntimeInvisibleTypeAnnotationsAttribute{NameStr: name, Annotations: anns}, nil
	case attrAnnotationDefault:
		val, err := decodeElementValue(body)
		if err != nil {
			return nil, errors.Wrap(err, attrAnnotationDefault)
		}
		return AnnotationDefaultAttribute{NameStr: name, Value: val}, nil
	case attrBootstrapMethods:
		return decodeBootstrapMethodsAttribute(body, name)
	case attrMethodParameters:
		return decodeMethodParametersAttribute(body, name)
	case attrModule:
		return decodeModuleAttribute(body, name)
	case attrModulePackages:
		pkgs, err := decodePointerList[PackageEntry](body)
		if err != nil {
			return nil, errors.Wrap(err, attrModulePackages)
		}
		return ModulePackagesAttribute{NameStr: name, Packages: pkgs}, nil
	case attrModuleMainClass:
		p, err := readPointer[ClassEntry](body)
		if err != nil {
			return nil, errors.Wrap(err, attrModuleMainClass)
		}
		return ModuleMainClassAttribute{NameStr: name, MainClass: p}, nil
	case attrNestHost:
		p, err := readPointer[ClassEntry](body)
		if err != nil {
			return nil, errors.Wrap(err, attrNestHost)
		}
		return NestHostAttribute{NameStr: name, HostClass: p}, nil
	case attrNestMembers:
		classes, err := decodePointerList[ClassEntry](body)
		if err != nil {
			return nil, errors.Wrap(err, attrNestMembers)
		}
		return NestMembersAttribute{NameStr: name, Classes: classes}, nil
	case attrPermittedSubclasses:
		classes, err := decodePointerList[ClassEntry](body)
		if err != nil {
			return nil, errors.Wrap(err, attrPermittedSubclasses)
		}
		return PermittedSubclassesAttribute{NameStr: name, Classes: classes}, nil
	case attrRecord:
		return decodeRecordAttribute(body, cp, name)
	default:
		data, err := body.readBytes(body.remaining())
		if err != nil {
			return nil, errors.Wrap(err, "unknown attribute body")
		}
		return UnknownAttribute{NameStr: name, Data: data}, nil
	}
}

// decodePointerList reads a u2 count followed by that many u2 typed
// pointers — the shared shape of Exceptions, NestMembers,
// PermittedSubclasses, and ModulePackages.
func decodePointerList[T Entry](c *cursor) ([]Pointer[T], error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "count")
	}
	out := make([]Pointer[T], n)
	for i := range out {
		out[i], err = readPointer[T](c)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
	}
	return out, nil
}

// ---- simple attributes ----

type ConstantValueAttribute struct {
	NameStr string
	Value   Pointer[Entry] // Integer, Float, Long, Double, or String
}

func (a ConstantValueAttribute) AttributeName() string { return a.NameStr }

func decodeConstantValueAttribute(c *cursor, name string) (Attribute, error) {
	p, err := readPointer[Entry](c)
	if err != nil {
		return nil, errors.Wrap(err, attrConstantValue)
	}
	return ConstantValueAttribute{NameStr: name, Value: p}, nil
}

type SyntheticAttribute struct{ NameStr string }

func (a SyntheticAttribute) AttributeName() string { return a.NameStr }

type DeprecatedAttribute struct{ NameStr string }

func (a DeprecatedAttribute) AttributeName() string { return a.NameStr }

type SignatureAttribute struct {
	NameStr   string
	Signature Pointer[Utf8Entry]
}

func (a SignatureAttribute) AttributeName() string { return a.NameStr }

type SourceFileAttribute struct {
	NameStr    string
	SourceFile Pointer[Utf8Entry]
}

func (a SourceFileAttribute) AttributeName() string { return a.NameStr }

// SourceDebugExtensionAttribute carries raw, borrowed, unspecified-
// encoding bytes (not necessarily modified UTF-8; this decoder never
// decodes it).
type SourceDebugExtensionAttribute struct {
	NameStr        string
	DebugExtension []byte
}

func (a SourceDebugExtensionAttribute) AttributeName() string { return a.NameStr }

type ExceptionsAttribute struct {
	NameStr             string
	ExceptionIndexTable []Pointer[ClassEntry]
}

func (a ExceptionsAttribute) AttributeName() string { return a.NameStr }

func decodeExceptionsAttribute(c *cursor, name string) (Attribute, error) {
	table, err := decodePointerList[ClassEntry](c)
	if err != nil {
		return nil, errors.Wrap(err, attrExceptions)
	}
	return ExceptionsAttribute{NameStr: name, ExceptionIndexTable: table}, nil
}

type InnerClassEntry struct {
	InnerClass           Pointer[ClassEntry]
	OuterClass           Pointer[ClassEntry] // zero: not a member of an enclosing class
	InnerName            Pointer[Utf8Entry]  // zero: anonymous
	InnerClassAccessFlags uint16
}

type InnerClassesAttribute struct {
	NameStr string
	Classes []InnerClassEntry
}

func (a InnerClassesAttribute) AttributeName() string { return a.NameStr }

func decodeInnerClassesAttribute(c *cursor, name string) (Attribute, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "InnerClasses number_of_classes")
	}
	classes := make([]InnerClassEntry, n)
	for i := range classes {
		inner, err := readPointer[ClassEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "InnerClasses entry %d inner_class_info_index", i)
		}
		outer, err := readPointer[ClassEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "InnerClasses entry %d outer_class_info_index", i)
		}
		innerName, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "InnerClasses entry %d inner_name_index", i)
		}
		flags, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "InnerClasses entry %d inner_class_access_flags", i)
		}
		if !validFlags(flags, maskInnerClass) {
			return nil, errors.Wrapf(ErrInvalidAccessFlags, "InnerClasses entry %d: 0x%04X", i, flags)
		}
		classes[i] = InnerClassEntry{
			InnerClass:            inner,
			OuterClass:            outer,
			InnerName:             innerName,
			InnerClassAccessFlags: flags,
		}
	}
	return InnerClassesAttribute{NameStr: name, Classes: classes}, nil
}

type EnclosingMethodAttribute struct {
	NameStr string
	Class   Pointer[ClassEntry]
	Method  Pointer[NameAndTypeEntry] // zero: not enclosed by a method/constructor
}

func (a EnclosingMethodAttribute) AttributeName() string { return a.NameStr }

func decodeEnclosingMethodAttribute(c *cursor, name string) (Attribute, error) {
	class, err := readPointer[ClassEntry](c)
	if err != nil {
		return nil, errors.Wrap(err, "EnclosingMethod class_index")
	}
	method, err := readPointer[NameAndTypeEntry](c)
	if err != nil {
		return nil, errors.Wrap(err, "EnclosingMethod method_index")
	}
	return EnclosingMethodAttribute{NameStr: name, Class: class, Method: method}, nil
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LineNumberTableAttribute struct {
	NameStr string
	Table   []LineNumberEntry
}

func (a LineNumberTableAttribute) AttributeName() string { return a.NameStr }

func decodeLineNumberTableAttribute(c *cursor, name string) (Attribute, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "LineNumberTable length")
	}
	table := make([]LineNumberEntry, n)
	for i := range table {
		startPC, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "LineNumberTable entry %d start_pc", i)
		}
		line, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "LineNumberTable entry %d line_number", i)
		}
		table[i] = LineNumberEntry{StartPC: startPC, LineNumber: line}
	}
	return LineNumberTableAttribute{NameStr: name, Table: table}, nil
}

type LocalVariableEntry struct {
	StartPC    uint16
	Length     uint16
	Name       Pointer[Utf8Entry]
	Descriptor Pointer[Utf8Entry]
	Index      uint16
}

type LocalVariableTableAttribute struct {
	NameStr string
	Table   []LocalVariableEntry
}

func (a LocalVariableTableAttribute) AttributeName() string { return a.NameStr }

func decodeLocalVariableTableAttribute(c *cursor, name string) (Attribute, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "LocalVariableTable length")
	}
	table := make([]LocalVariableEntry, n)
	for i := range table {
		var e LocalVariableEntry
		if e.StartPC, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTable entry %d start_pc", i)
		}
		if e.Length, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTable entry %d length", i)
		}
		if e.Name, err = readPointer[Utf8Entry](c); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTable entry %d name_index", i)
		}
		if e.Descriptor, err = readPointer[Utf8Entry](c); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTable entry %d descriptor_index", i)
		}
		if e.Index, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTable entry %d index", i)
		}
		table[i] = e
	}
	return LocalVariableTableAttribute{NameStr: name, Table: table}, nil
}

type LocalVariableTypeEntry struct {
	StartPC   uint16
	Length    uint16
	Name      Pointer[Utf8Entry]
	Signature Pointer[Utf8Entry]
	Index     uint16
}

type LocalVariableTypeTableAttribute struct {
	NameStr string
	Table   []LocalVariableTypeEntry
}

func (a LocalVariableTypeTableAttribute) AttributeName() string { return a.NameStr }

func decodeLocalVariableTypeTableAttribute(c *cursor, name string) (Attribute, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "LocalVariableTypeTable length")
	}
	table := make([]LocalVariableTypeEntry, n)
	for i := range table {
		var e LocalVariableTypeEntry
		if e.StartPC, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTypeTable entry %d start_pc", i)
		}
		if e.Length, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTypeTable entry %d length", i)
		}
		if e.Name, err = readPointer[Utf8Entry](c); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTypeTable entry %d name_index", i)
		}
		if e.Signature, err = readPointer[Utf8Entry](c); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTypeTable entry %d signature_index", i)
		}
		if e.Index, err = c.readU16(); err != nil {
			return nil, errors.Wrapf(err, "LocalVariableTypeTable entry %d index", i)
		}
		table[i] = e
	}
	return LocalVariableTypeTableAttribute{NameStr: name, Table: table}, nil
}

type RuntimeVisibleAnnotationsAttribute struct {
	NameStr     string
	Annotations []Annotation
}

func (a RuntimeVisibleAnnotationsAttribute) AttributeName() string { return a.NameStr }

type RuntimeInvisibleAnnotationsAttribute struct {
	NameStr     string
	Annotations []Annotation
}

func (a RuntimeInvisibleAnnotationsAttribute) AttributeName() string { return a.NameStr }

type RuntimeVisibleParameterAnnotationsAttribute struct {
	NameStr    string
	Parameters [][]Annotation
}

func (a RuntimeVisibleParameterAnnotationsAttribute) AttributeName() string { return a.NameStr }

type RuntimeInvisibleParameterAnnotationsAttribute struct {
	NameStr    string
	Parameters [][]Annotation
}

func (a RuntimeInvisibleParameterAnnotationsAttribute) AttributeName() string { return a.NameStr }

type RuntimeVisibleTypeAnnotationsAttribute struct {
	NameStr     string
	Annotations []TypeAnnotation
}

func (a RuntimeVisibleTypeAnnotationsAttribute) AttributeName() string { return a.NameStr }

type RuntimeInvisibleTypeAnnotationsAttribute struct {
	NameStr     string
	Annotations []TypeAnnotation
}

func (a RuntimeInvisibleTypeAnnotationsAttribute) AttributeName() string { return a.NameStr }

type AnnotationDefaultAttribute struct {
	NameStr string
	Value   ElementValue
}

func (a AnnotationDefaultAttribute) AttributeName() string { return a.NameStr }

type NestHostAttribute struct {
	NameStr   string
	HostClass Pointer[ClassEntry]
}

func (a NestHostAttribute) AttributeName() string { return a.NameStr }

type NestMembersAttribute struct {
	NameStr string
	Classes []Pointer[ClassEntry]
}

func (a NestMembersAttribute) AttributeName() string { return a.NameStr }

type PermittedSubclassesAttribute struct {
	NameStr string
	Classes []Pointer[ClassEntry]
}

func (a PermittedSubclassesAttribute) AttributeName() string { return a.NameStr }

type MethodParameterEntry struct {
	Name  Pointer[Utf8Entry] // zero: unnamed (formal parameter has no name in the source)
	Flags uint16
}

type MethodParametersAttribute struct {
	NameStr    string
	Parameters []MethodParameterEntry
}

func (a MethodParametersAttribute) AttributeName() string { return a.NameStr }

func decodeMethodParametersAttribute(c *cursor, name string) (Attribute, error) {
	n, err := c.readU8()
	if err != nil {
		return nil, errors.Wrap(err, "MethodParameters parameters_count")
	}
	params := make([]MethodParameterEntry, n)
	for i := range params {
		namePtr, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "MethodParameters entry %d name_index", i)
		}
		flags, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "MethodParameters entry %d access_flags", i)
		}
		if !validFlags(flags, maskParam) {
			return nil, errors.Wrapf(ErrInvalidAccessFlags, "MethodParameters entry %d: 0x%04X", i, flags)
		}
		params[i] = MethodParameterEntry{Name: namePtr, Flags: flags}
	}
	return MethodParametersAttribute{NameStr: name, Parameters: params}, nil
}

// RecordComponent is one component of a Record attribute; itself
// carries a nested attribute list (typically Signature and the
// annotation attributes), per JVMS 4.7.30.
type RecordComponent struct {
	Name       Pointer[Utf8Entry]
	Descriptor Pointer[Utf8Entry]
	Attributes []Attribute
}

type RecordAttribute struct {
	NameStr    string
	Components []RecordComponent
}

func (a RecordAttribute) AttributeName() string { return a.NameStr }

func decodeRecordAttribute(c *cursor, cp *ConstantPool, name string) (Attribute, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Record components_count")
	}
	components := make([]RecordComponent, n)
	for i := range components {
		namePtr, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Record component %d name_index", i)
		}
		descPtr, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Record component %d descriptor_index", i)
		}
		attrCount, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "Record component %d attributes_count", i)
		}
		attrs, err := decodeAttributes(c, cp, attrCount)
		if err != nil {
			return nil, errors.Wrapf(err, "Record component %d attributes", i)
		}
		components[i] = RecordComponent{Name: namePtr, Descriptor: descPtr, Attributes: attrs}
	}
	return RecordAttribute{NameStr: name, Components: components}, nil
}
