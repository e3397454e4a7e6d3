/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// Annotations, element values, and type annotations (JVMS 4.7.16 /
// 4.7.20). Unlike the constant pool and stack map frames, which use an
// interface sum type, ElementValue and TargetInfo use a single struct
// with tag-gated fields, because unlike Entry/StackMapFrame their
// variants are small enough that a sparse struct
// reads more plainly than a dozen one-field types that every call site
// would immediately need to type-switch back out of.

// Annotation is one runtime-visible or -invisible annotation
// attachment: an annotation interface type descriptor plus its
// element/value pairs.
type Annotation struct {
	Type              Pointer[Utf8Entry]
	ElementValuePairs []ElementValuePair
}

type ElementValuePair struct {
	Name  Pointer[Utf8Entry]
	Value ElementValue
}

// ElementValueTag is the one-byte tag of an element_value; its values
// are the ASCII letters JVMS 4.7.16.1 assigns to each variant, not a
// 0-based enum.
type ElementValueTag byte

const (
	EVByte       ElementValueTag = 'B'
	EVChar       ElementValueTag = 'C'
	EVDouble     ElementValueTag = 'D'
	EVFloat      ElementValueTag = 'F'
	EVInt        ElementValueTag = 'I'
	EVLong       ElementValueTag = 'J'
	EVShort      ElementValueTag = 'S'
	EVBoolean    ElementValueTag = 'Z'
	EVString     ElementValueTag = 's'
	EVEnum       ElementValueTag = 'e'
	EVClass      ElementValueTag = 'c'
	EVAnnotation ElementValueTag = '@'
	EVArray      ElementValueTag = '['
)

// ElementValue holds one element_value; only the fields relevant to
// Tag are populated. ConstValue is used for the eight primitive tags
// and EVString: its target variant (Utf8Entry for 's', the matching
// primitive entry otherwise) depends on Tag the same way
// MethodHandleEntry.Reference's does on Kind (pool.go), so it is typed
// against the bare Entry interface and resolved with GetEntry.
type ElementValue struct {
	Tag ElementValueTag

	ConstValue Pointer[Entry] // B C D F I J S Z s

	EnumTypeName  Pointer[Utf8Entry] // e
	EnumConstName Pointer[Utf8Entry] // e

	ClassInfo Pointer[Utf8Entry] // c

	AnnotationValue *Annotation // @

	ArrayValues []ElementValue // [
}

func decodeElementValue(c *cursor) (ElementValue, error) {
	tagByte, err := c.readU8()
	if err != nil {
		return ElementValue{}, errors.Wrap(err, "element_value tag")
	}
	tag := ElementValueTag(tagByte)

	switch tag {
	case EVByte, EVChar, EVDouble, EVFloat, EVInt, EVLong, EVShort, EVBoolean, EVString:
		p, err := readPointer[Entry](c)
		if err != nil {
			return ElementValue{}, errors.Wrap(err, "element_value const_value_index")
		}
		return ElementValue{Tag: tag, ConstValue: p}, nil

	case EVEnum:
		typeName, err := readPointer[Utf8Entry](c)
		if err != nil {
			return ElementValue{}, errors.Wrap(err, "element_value enum type_name_index")
		}
		constName, err := readPointer[Utf8Entry](c)
		if err != nil {
			return ElementValue{}, errors.Wrap(err, "element_value enum const_name_index")
		}
		return ElementValue{Tag: tag, EnumTypeName: typeName, EnumConstName: constName}, nil

	case EVClass:
		p, err := readPointer[Utf8Entry](c)
		if err != nil {
			return ElementValue{}, errors.Wrap(err, "element_value class_info_index")
		}
		return ElementValue{Tag: tag, ClassInfo: p}, nil

	case EVAnnotation:
		ann, err := decodeAnnotation(c)
		if err != nil {
			return ElementValue{}, errors.Wrap(err, "element_value nested annotation")
		}
		return ElementValue{Tag: tag, AnnotationValue: &ann}, nil

	case EVArray:
		n, err := c.readU16()
		if err != nil {
			return ElementValue{}, errors.Wrap(err, "element_value array num_values")
		}
		vals := make([]ElementValue, n)
		for i := range vals {
			vals[i], err = decodeElementValue(c)
			if err != nil {
				return ElementValue{}, errors.Wrapf(err, "element_value array element %d", i)
			}
		}
		return ElementValue{Tag: tag, ArrayValues: vals}, nil

	default:
		return ElementValue{}, errors.Wrapf(ErrUnknownElementValueTag, "tag %q", rune(tagByte))
	}
}

func decodeAnnotation(c *cursor) (Annotation, error) {
	typePtr, err := readPointer[Utf8Entry](c)
	if err != nil {
		return Annotation{}, errors.Wrap(err, "annotation type_index")
	}
	n, err := c.readU16()
	if err != nil {
		return Annotation{}, errors.Wrap(err, "annotation num_element_value_pairs")
	}
	pairs := make([]ElementValuePair, n)
	for i := range pairs {
		namePtr, err := readPointer[Utf8Entry](c)
		if err != nil {
			return Annotation{}, errors.Wrapf(err, "annotation pair %d element_name_index", i)
		}
		val, err := decodeElementValue(c)
		if err != nil {
			return Annotation{}, errors.Wrapf(err, "annotation pair %d value", i)
		}
		pairs[i] = ElementValuePair{Name: namePtr, Value: val}
	}
	return Annotation{Type: typePtr, ElementValuePairs: pairs}, nil
}

func decodeAnnotations(c *cursor) ([]Annotation, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "num_annotations")
	}
	anns := make([]Annotation, n)
	for i := range anns {
		anns[i], err = decodeAnnotation(c)
		if err != nil {
			return nil, errors.Wrapf(err, "annotation %d", i)
		}
	}
	return anns, nil
}

// decodeParameterAnnotations reads a RuntimeVisible/InvisibleParameterAnnotations
// body: a u1 parameter count, each followed by its own annotations list.
func decodeParameterAnnotations(c *cursor) ([][]Annotation, error) {
	n, err := c.readU8()
	if err != nil {
		return nil, errors.Wrap(err, "num_parameters")
	}
	params := make([][]Annotation, n)
	for i := range params {
		params[i], err = decodeAnnotations(c)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %d annotations", i)
		}
	}
	return params, nil
}

// ---- type annotations (JVMS 4.7.20) ----

// TargetType is the one-byte target_type of a type_annotation. The
// 22 sanctioned values fall into two groups distinguished by which
// declaration or use site they annotate; valid() checks membership in
// the closed set.
type TargetType byte

const (
	TTClassTypeParameter                    TargetType = 0x00
	TTMethodTypeParameter                   TargetType = 0x01
	TTSupertype                             TargetType = 0x10
	TTClassTypeParameterBound               TargetType = 0x11
	TTMethodTypeParameterBound              TargetType = 0x12
	TTField                                 TargetType = 0x13
	TTReturn                                TargetType = 0x14
	TTReceiver                              TargetType = 0x15
	TTFormalParameter                       TargetType = 0x16
	TTThrows                                TargetType = 0x17
	TTLocalVariable                         TargetType = 0x40
	TTResourceVariable                      TargetType = 0x41
	TTExceptionParameter                    TargetType = 0x42
	TTInstanceof                            TargetType = 0x43
	TTNew                                   TargetType = 0x44
	TTNewMethodReference                    TargetType = 0x45
	TTIdentifierMethodReference             TargetType = 0x46
	TTConstructorInvocationTypeArgument     TargetType = 0x47
	TTMethodInvocationTypeArgument          TargetType = 0x48
	TTConstructorReferenceTypeArgument      TargetType = 0x49
	TTNewMethodReferenceTypeArgument        TargetType = 0x4A
	TTIdentifierMethodReferenceTypeArgument TargetType = 0x4B
)

func (t TargetType) valid() bool {
	switch t {
	case TTClassTypeParameter, TTMethodTypeParameter, TTSupertype,
		TTClassTypeParameterBound, TTMethodTypeParameterBound,
		TTField, TTReturn, TTReceiver, TTFormalParameter, TTThrows,
		TTLocalVariable, TTResourceVariable, TTExceptionParameter,
		TTInstanceof, TTNew, TTNewMethodReference, TTIdentifierMethodReference,
		TTConstructorInvocationTypeArgument, TTMethodInvocationTypeArgument,
		TTConstructorReferenceTypeArgument, TTNewMethodReferenceTypeArgument,
		TTIdentifierMethodReferenceTypeArgument:
		return true
	default:
		return false
	}
}

type LocalVarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// TargetInfo holds the target_info union; only the fields relevant to
// the owning TypeAnnotation's TargetType are meaningful.
type TargetInfo struct {
	TypeParameterIndex  uint8  // 0x00, 0x01
	SupertypeIndex      uint16 // 0x10
	BoundIndex          uint8  // 0x11, 0x12 (paired with TypeParameterIndex)
	FormalParameterIndex uint8 // 0x16
	ThrowsTypeIndex      uint16 // 0x17
	LocalVarTable       []LocalVarTargetEntry // 0x40, 0x41
	ExceptionTableIndex uint16 // 0x42
	Offset              uint16 // 0x43..0x46, and the type_argument_target offset field
	TypeArgumentIndex   uint8  // 0x47..0x4B
}

func decodeTargetInfo(c *cursor, tt TargetType) (TargetInfo, error) {
	switch tt {
	case TTClassTypeParameter, TTMethodTypeParameter:
		idx, err := c.readU8()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "type_parameter_target")
		}
		return TargetInfo{TypeParameterIndex: idx}, nil

	case TTSupertype:
		idx, err := c.readU16()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "supertype_target")
		}
		return TargetInfo{SupertypeIndex: idx}, nil

	case TTClassTypeParameterBound, TTMethodTypeParameterBound:
		param, err := c.readU8()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "type_parameter_bound_target type_parameter_index")
		}
		bound, err := c.readU8()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "type_parameter_bound_target bound_index")
		}
		return TargetInfo{TypeParameterIndex: param, BoundIndex: bound}, nil

	case TTField, TTReturn, TTReceiver:
		return TargetInfo{}, nil // empty_target

	case TTFormalParameter:
		idx, err := c.readU8()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "formal_parameter_target")
		}
		return TargetInfo{FormalParameterIndex: idx}, nil

	case TTThrows:
		idx, err := c.readU16()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "throws_target")
		}
		return TargetInfo{ThrowsTypeIndex: idx}, nil

	case TTLocalVariable, TTResourceVariable:
		n, err := c.readU16()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "localvar_target table_length")
		}
		table := make([]LocalVarTargetEntry, n)
		for i := range table {
			startPC, err := c.readU16()
			if err != nil {
				return TargetInfo{}, errors.Wrapf(err, "localvar_target entry %d start_pc", i)
			}
			length, err := c.readU16()
			if err != nil {
				return TargetInfo{}, errors.Wrapf(err, "localvar_target entry %d length", i)
			}
			index, err := c.readU16()
			if err != nil {
				return TargetInfo{}, errors.Wrapf(err, "localvar_target entry %d index", i)
			}
			table[i] = LocalVarTargetEntry{StartPC: startPC, Length: length, Index: index}
		}
		return TargetInfo{LocalVarTable: table}, nil

	case TTExceptionParameter:
		idx, err := c.readU16()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "catch_target")
		}
		return TargetInfo{ExceptionTableIndex: idx}, nil

	case TTInstanceof, TTNew, TTNewMethodReference, TTIdentifierMethodReference:
		off, err := c.readU16()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "offset_target")
		}
		return TargetInfo{Offset: off}, nil

	case TTConstructorInvocationTypeArgument, TTMethodInvocationTypeArgument,
		TTConstructorReferenceTypeArgument, TTNewMethodReferenceTypeArgument,
		TTIdentifierMethodReferenceTypeArgument:
		off, err := c.readU16()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "type_argument_target offset")
		}
		idx, err := c.readU8()
		if err != nil {
			return TargetInfo{}, errors.Wrap(err, "type_argument_target type_argument_index")
		}
		return TargetInfo{Offset: off, TypeArgumentIndex: idx}, nil

	default:
		return TargetInfo{}, errors.Wrapf(ErrInvalidTargetType, "0x%02X", byte(tt))
	}
}

// PathKind is a type_path entry's path_kind (JVMS 4.7.20.2).
type PathKind byte

const (
	PathArray         PathKind = 0
	PathNested        PathKind = 1
	PathWildcardBound PathKind = 2
	PathTypeArgument  PathKind = 3
)

func (k PathKind) valid() bool { return k <= PathTypeArgument }

type TypePathEntry struct {
	Kind              PathKind
	TypeArgumentIndex uint8 // only meaningful when Kind == PathTypeArgument
}

type TypePath []TypePathEntry

func decodeTypePath(c *cursor) (TypePath, error) {
	n, err := c.readU8()
	if err != nil {
		return nil, errors.Wrap(err, "type_path path_length")
	}
	path := make(TypePath, n)
	for i := range path {
		kindByte, err := c.readU8()
		if err != nil {
			return nil, errors.Wrapf(err, "type_path entry %d path_kind", i)
		}
		kind := PathKind(kindByte)
		if !kind.valid() {
			return nil, errors.Wrapf(ErrInvalidPathKind, "entry %d: %d", i, kindByte)
		}
		argIdx, err := c.readU8()
		if err != nil {
			return nil, errors.Wrapf(err, "type_path entry %d type_argument_index", i)
		}
		path[i] = TypePathEntry{Kind: kind, TypeArgumentIndex: argIdx}
	}
	return path, nil
}

// TypeAnnotation is a RuntimeVisible/InvisibleTypeAnnotations entry
// (JVMS 4.7.20): an Annotation extended with the
// target_type/target_info/target_path triple locating the annotated
// type use.
type TypeAnnotation struct {
	TargetType        TargetType
	Target            TargetInfo
	Path              TypePath
	Type              Pointer[Utf8Entry]
	ElementValuePairs []ElementValuePair
}

func decodeTypeAnnotation(c *cursor) (TypeAnnotation, error) {
	ttByte, err := c.readU8()
	if err != nil {
		return TypeAnnotation{}, errors.Wrap(err, "type_annotation target_type")
	}
	tt := TargetType(ttByte)
	if !tt.valid() {
		return TypeAnnotation{}, errors.Wrapf(ErrInvalidTargetType, "0x%02X", ttByte)
	}
	target, err := decodeTargetInfo(c, tt)
	if err != nil {
		return TypeAnnotation{}, errors.Wrap(err, "target_info")
	}
	path, err := decodeTypePath(c)
	if err != nil {
		return TypeAnnotation{}, errors.Wrap(err, "target_path")
	}
	ann, err := decodeAnnotation(c)
	if err != nil {
		return TypeAnnotation{}, errors.Wrap(err, "annotation body")
	}
	return TypeAnnotation{
		TargetType:        tt,
		Target:            target,
		Path:              path,
		Type:              ann.Type,
		ElementValuePairs: ann.ElementValuePairs,
	}, nil
}

func decodeTypeAnnotations(c *cursor) ([]TypeAnnotation, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "num_annotations")
	}
	anns := make([]TypeAnnotation, n)
	for i := range anns {
		anns[i], err = decodeTypeAnnotation(c)
		if err != nil {
			return nil, errors.Wrapf(err, "type annotation %d", i)
		}
	}
	return anns, nil
}
