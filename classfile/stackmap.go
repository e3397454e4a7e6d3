/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// Stack map frames and verification types (JVMS 4.7.4).
//
// Uses the same sum-type-by-interface approach as ConstantPool's Entry
// (pool.go): seven frame shapes sharing no common field layout,
// discriminated by the wire tag byte's range rather than by a type
// field.

// VerificationTypeTag is the one-byte discriminator of a
// verification_type_info entry (JVMS 4.7.4).
type VerificationTypeTag byte

const (
	VTop               VerificationTypeTag = 0
	VInteger           VerificationTypeTag = 1
	VFloat             VerificationTypeTag = 2
	VDouble            VerificationTypeTag = 3
	VLong              VerificationTypeTag = 4
	VNull              VerificationTypeTag = 5
	VUninitializedThis VerificationTypeTag = 6
	VObject            VerificationTypeTag = 7
	VUninitialized     VerificationTypeTag = 8
)

// VerificationType is one local-variable or operand-stack slot's
// verification type. ObjectClass is meaningful only when Tag is
// VObject; Offset (the bytecode offset of the "new" instruction that
// produced the not-yet-initialized value) only when Tag is
// VUninitialized.
type VerificationType struct {
	Tag         VerificationTypeTag
	ObjectClass Pointer[ClassEntry]
	Offset      uint16
}

func decodeVerificationType(c *cursor) (VerificationType, error) {
	tagByte, err := c.readU8()
	if err != nil {
		return VerificationType{}, errors.Wrap(err, "verification_type_info tag")
	}
	tag := VerificationTypeTag(tagByte)
	switch tag {
	case VTop, VInteger, VFloat, VDouble, VLong, VNull, VUninitializedThis:
		return VerificationType{Tag: tag}, nil
	case VObject:
		p, err := readPointer[ClassEntry](c)
		if err != nil {
			return VerificationType{}, errors.Wrap(err, "object verification type class pointer")
		}
		return VerificationType{Tag: tag, ObjectClass: p}, nil
	case VUninitialized:
		off, err := c.readU16()
		if err != nil {
			return VerificationType{}, errors.Wrap(err, "uninitialized verification type offset")
		}
		return VerificationType{Tag: tag, Offset: off}, nil
	default:
		return VerificationType{}, errors.Wrapf(ErrUnknownVerificationTypeInfoTag, "tag %d", tagByte)
	}
}

// StackMapFrame is the sum type over the seven stack_map_frame shapes.
// frameTag returns the wire tag byte that selected this shape (for
// SameFrame this equals offset_delta too, for SameLocals1StackItemFrame
// offset_delta is the tag minus 64; the extended/chop/append/full
// shapes carry offset_delta separately).
type StackMapFrame interface {
	frameTag() byte
}

// SameFrame: tag 0..63. offset_delta equals FrameType; no locals or
// stack items.
type SameFrame struct{ FrameType byte }

// SameLocals1StackItemFrame: tag 64..127. offset_delta is FrameType-64;
// exactly one operand stack verification type follows.
type SameLocals1StackItemFrame struct {
	FrameType byte
	Stack     VerificationType
}

// SameLocals1StackItemFrameExtended: tag 247.
type SameLocals1StackItemFrameExtended struct {
	OffsetDelta uint16
	Stack       VerificationType
}

// ChopFrame: tag 248..250. Removes the last (251-FrameType) local
// variables from the previous frame.
type ChopFrame struct {
	FrameType   byte
	OffsetDelta uint16
}

// SameFrameExtended: tag 251.
type SameFrameExtended struct{ OffsetDelta uint16 }

// AppendFrame: tag 252..254. Appends (FrameType-251) local variables.
type AppendFrame struct {
	FrameType   byte
	OffsetDelta uint16
	Locals      []VerificationType
}

// FullFrame: tag 255. Carries the complete local variable and operand
// stack verification type lists.
type FullFrame struct {
	OffsetDelta uint16
	Locals      []VerificationType
	Stack       []VerificationType
}

func (f SameFrame) frameTag() byte                           { return f.FrameType }
func (f SameLocals1StackItemFrame) frameTag() byte           { return f.FrameType }
func (f SameLocals1StackItemFrameExtended) frameTag() byte   { return 247 }
func (f ChopFrame) frameTag() byte                           { return f.FrameType }
func (f SameFrameExtended) frameTag() byte                   { return 251 }
func (f AppendFrame) frameTag() byte                         { return f.FrameType }
func (f FullFrame) frameTag() byte                           { return 255 }

// decodeStackMapFrame dispatches on the tag byte's range (JVMS 4.7.4
// Table). Tags 128..246 are reserved for future frame types and must be
// rejected, not silently skipped.
func decodeStackMapFrame(c *cursor) (StackMapFrame, error) {
	tagByte, err := c.readU8()
	if err != nil {
		return nil, errors.Wrap(err, "stack_map_frame tag")
	}

	switch {
	case tagByte <= 63:
		return SameFrame{FrameType: tagByte}, nil

	case tagByte <= 127:
		stack, err := decodeVerificationType(c)
		if err != nil {
			return nil, errors.Wrap(err, "same_locals_1_stack_item_frame")
		}
		return SameLocals1StackItemFrame{FrameType: tagByte, Stack: stack}, nil

	case tagByte <= 246:
		return nil, errors.Wrapf(ErrReservedFrameType, "tag %d", tagByte)

	case tagByte == 247:
		offsetDelta, err := c.readU16()
		if err != nil {
			return nil, errors.Wrap(err, "same_locals_1_stack_item_frame_extended offset_delta")
		}
		stack, err := decodeVerificationType(c)
		if err != nil {
			return nil, errors.Wrap(err, "same_locals_1_stack_item_frame_extended stack item")
		}
		return SameLocals1StackItemFrameExtended{OffsetDelta: offsetDelta, Stack: stack}, nil

	case tagByte <= 250:
		offsetDelta, err := c.readU16()
		if err != nil {
			return nil, errors.Wrap(err, "chop_frame offset_delta")
		}
		return ChopFrame{FrameType: tagByte, OffsetDelta: offsetDelta}, nil

	case tagByte == 251:
		offsetDelta, err := c.readU16()
		if err != nil {
			return nil, errors.Wrap(err, "same_frame_extended offset_delta")
		}
		return SameFrameExtended{OffsetDelta: offsetDelta}, nil

	case tagByte <= 254:
		offsetDelta, err := c.readU16()
		if err != nil {
			return nil, errors.Wrap(err, "append_frame offset_delta")
		}
		k := int(tagByte) - 251
		locals := make([]VerificationType, k)
		for i := range locals {
			locals[i], err = decodeVerificationType(c)
			if err != nil {
				return nil, errors.Wrapf(err, "append_frame local %d", i)
			}
		}
		return AppendFrame{FrameType: tagByte, OffsetDelta: offsetDelta, Locals: locals}, nil

	default: // tagByte == 255
		offsetDelta, err := c.readU16()
		if err != nil {
			return nil, errors.Wrap(err, "full_frame offset_delta")
		}
		numLocals, err := c.readU16()
		if err != nil {
			return nil, errors.Wrap(err, "full_frame number_of_locals")
		}
		locals := make([]VerificationType, numLocals)
		for i := range locals {
			locals[i], err = decodeVerificationType(c)
			if err != nil {
				return nil, errors.Wrapf(err, "full_frame local %d", i)
			}
		}
		numStack, err := c.readU16()
		if err != nil {
			return nil, errors.Wrap(err, "full_frame number_of_stack_items")
		}
		stack := make([]VerificationType, numStack)
		for i := range stack {
			stack[i], err = decodeVerificationType(c)
			if err != nil {
				return nil, errors.Wrapf(err, "full_frame stack item %d", i)
			}
		}
		return FullFrame{OffsetDelta: offsetDelta, Locals: locals, Stack: stack}, nil
	}
}

// StackMapTableAttribute is the Code attribute's nested StackMapTable:
// the verifier's frame map for the method body.
type StackMapTableAttribute struct {
	NameStr string
	Frames  []StackMapFrame
}

func (a StackMapTableAttribute) AttributeName() string { return a.NameStr }

// decodeStackMapFrames reads the StackMapTable attribute body: a u2
// entry count followed by that many stack_map_frame entries.
func decodeStackMapFrames(c *cursor) ([]StackMapFrame, error) {
	count, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "number_of_entries")
	}
	frames := make([]StackMapFrame, count)
	for i := range frames {
		frames[i], err = decodeStackMapFrame(c)
		if err != nil {
			return nil, errors.Wrapf(err, "stack map frame %d", i)
		}
	}
	return frames, nil
}
