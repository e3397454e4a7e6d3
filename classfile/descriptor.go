/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// Field and method descriptor grammar validators (JVMS 4.3.2, 4.3.3).
//
// A regexp-based grammar was considered and rejected because the
// recursive '[' FieldDesc rule (bounded to depth 255) needs a manual
// loop to count array dimensions anyway, so a hand-written byte scanner
// is simpler.

const maxArrayDepth = 255

// IsValidFieldDescriptor reports whether s is a complete, valid field
// descriptor:
//
//	FieldDesc := BaseType | 'L' ClassName ';' | '[' FieldDesc
//	BaseType  := one of B C D F I J S Z
//	ClassName := one or more bytes from [A-Za-z/], '/' not at the
//	             first or last position
//
// depth is bounded to 255 array brackets.
func IsValidFieldDescriptor(s string) bool {
	rest, ok := scanFieldDescriptor(s, false)
	return ok && rest == ""
}

// scanFieldDescriptor consumes one FieldDesc from the front of s and
// returns what remains. When partial is true, trailing characters after
// a successfully parsed descriptor are tolerated (used while scanning a
// method's parameter list, where a FieldDesc is one element of a
// sequence rather than the whole string).
func scanFieldDescriptor(s string, partial bool) (rest string, ok bool) {
	depth := 0
	for len(s) > 0 && s[0] == '[' {
		depth++
		if depth > maxArrayDepth {
			return "", false
		}
		s = s[1:]
	}
	if len(s) == 0 {
		return "", false
	}

	switch s[0] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		rest = s[1:]
	case 'L':
		end := -1
		for i := 1; i < len(s); i++ {
			if s[i] == ';' {
				end = i
				break
			}
		}
		if end < 0 {
			return "", false
		}
		name := s[1:end]
		if !isValidClassNameBody(name) {
			return "", false
		}
		rest = s[end+1:]
	default:
		return "", false
	}

	if !partial && rest != "" {
		return "", false
	}
	return rest, true
}

// isValidClassNameBody validates the internal-form class name embedded
// in an 'L' ... ';' descriptor: one or more bytes from [A-Za-z/], with
// '/' forbidden at the first or last position (rejects "L;" and
// "L/a;"-shaped boundary slashes).
func isValidClassNameBody(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		isLetter := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
		isSlash := c == '/'
		if !isLetter && !isSlash {
			return false
		}
		if isSlash && (i == 0 || i == len(name)-1) {
			return false
		}
	}
	return true
}

// IsValidMethodDescriptor reports whether s matches
// '(' FieldDesc* ')' (FieldDesc | 'V') — a void return is legal only in
// the return position.
func IsValidMethodDescriptor(s string) bool {
	if len(s) == 0 || s[0] != '(' {
		return false
	}
	s = s[1:]
	for len(s) > 0 && s[0] != ')' {
		rest, ok := scanFieldDescriptor(s, true)
		if !ok {
			return false
		}
		s = rest
	}
	if len(s) == 0 || s[0] != ')' {
		return false
	}
	s = s[1:]
	if s == "V" {
		return true
	}
	return IsValidFieldDescriptor(s)
}

// validateFieldDesc and validateMethodDesc return an error instead of a
// bool, for use from the format-check call sites in field and method
// decoding (classfile.go) where a descriptive error is more useful than a bare
// boolean.
func validateFieldDesc(s string) error {
	if !IsValidFieldDescriptor(s) {
		return errClassFormat("invalid field descriptor: %q", s)
	}
	return nil
}

func validateMethodDesc(s string) error {
	if !IsValidMethodDescriptor(s) {
		return errClassFormat("invalid method descriptor: %q", s)
	}
	return nil
}
