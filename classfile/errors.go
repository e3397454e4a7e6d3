/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// The closed error taxonomy of the decoder. Wire-level failures wrap
// exactly one of these sentinels (via errors.Wrap/Wrapf), so callers
// can test the failure kind with errors.Is while still getting a
// human-readable chain out of Error(). Structural format-check failures
// (errClassFormat below) and a few other structural errors, such as an
// unrecognized constant pool tag, an invalid method handle kind, or a
// malformed tableswitch/lookupswitch, are plain errors that wrap none
// of them.
var (
	// ErrUnexpectedEOF: a read requested more bytes than remain.
	ErrUnexpectedEOF = errors.New("unexpected end of class file")

	// ErrInvalidHeader: magic number mismatch.
	ErrInvalidHeader = errors.New("invalid class file header (bad magic)")

	// ErrInvalidMajorVersion: major version outside [45, 65].
	ErrInvalidMajorVersion = errors.New("invalid major version")

	// ErrInvalidCPIndex: typed pointer is 0, points past the pool, or
	// points at the absent placeholder following a Long/Double.
	ErrInvalidCPIndex = errors.New("invalid constant pool index")

	// ErrWrongCPType: typed pointer references a variant other than
	// the one the accessor expected.
	ErrWrongCPType = errors.New("constant pool entry has wrong type")

	// ErrInvalidAccessFlags: a bit is set outside the sanctioned mask
	// for the given access-flag context.
	ErrInvalidAccessFlags = errors.New("invalid access flags")

	// ErrUnknownVerificationTypeInfoTag: verification-type tag outside {0..8}.
	ErrUnknownVerificationTypeInfoTag = errors.New("unknown verification_type_info tag")

	// ErrReservedFrameType: stack-map frame tag in the reserved 128..246 range.
	ErrReservedFrameType = errors.New("reserved stack map frame type")

	// ErrUnknownFrameType: stack-map frame tag outside the defined ranges.
	ErrUnknownFrameType = errors.New("unknown stack map frame type")

	// ErrUnknownElementValueTag: annotation element_value tag outside the defined set.
	ErrUnknownElementValueTag = errors.New("unknown element_value tag")

	// ErrInvalidTargetType: type-annotation target_type byte outside the sanctioned set.
	ErrInvalidTargetType = errors.New("invalid type annotation target_type")

	// ErrInvalidPathKind: type_path entry's path_kind outside {0,1,2,3}.
	ErrInvalidPathKind = errors.New("invalid type_path path_kind")

	// ErrUnknownOpcode: an instruction byte outside 0x00..0xC9, 0xCA, 0xFE, 0xFF.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrAllocatorError: a requested allocation failed. Go's allocator
	// does not fail under normal operation (it panics/OOM-kills rather
	// than returning an error), so this decoder never actually returns
	// this sentinel; it is kept so the taxonomy stays a complete,
	// closed set.
	ErrAllocatorError = errors.New("allocation failed")

	// ErrMissingAttribute: reserved for callers that require a specific
	// attribute be present; the decoder itself never requires one.
	ErrMissingAttribute = errors.New("required attribute missing")
)

// errClassFormat builds a general structural-validation error (e.g. a
// malformed descriptor string) outside the wire-level taxonomy
// above, prefixing every format-check failure the same way.
func errClassFormat(format string, args ...any) error {
	return errors.Errorf("class format error: "+format, args...)
}
