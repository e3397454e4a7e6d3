/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// Query helpers for navigating a decoded ClassFile: resolving this/
// super class names, looking up a field or method by name and
// descriptor (the only combination that uniquely identifies a method,
// since overloading means name alone collides), and walking an
// attribute list for one concrete type.

// ThisClassName resolves cf.This to its class-name string (internal
// form, e.g. "java/lang/String").
func ThisClassName(cf *ClassFile) (string, error) {
	return resolveClassName(cf.ConstantPool, cf.This)
}

// SuperClassName resolves cf.Super, returning "java/lang/Object" for a
// zero pointer: every class's super chain terminates there, and only
// java/lang/Object itself is permitted to have no superclass.
func SuperClassName(cf *ClassFile) (string, error) {
	if cf.Super.IsZero() {
		return "java/lang/Object", nil
	}
	return resolveClassName(cf.ConstantPool, cf.Super)
}

func resolveClassName(cp *ConstantPool, p Pointer[ClassEntry]) (string, error) {
	class, err := GetChecked(cp, p)
	if err != nil {
		return "", err
	}
	name, err := cp.Utf8(class.Name)
	if err != nil {
		return "", err
	}
	return string(name), nil
}

// FindField looks up a field by name and descriptor. Go has no
// overload resolution but the class file format does carry fields
// that collide on name alone only via descriptor difference (this
// never actually happens for fields, only methods, but the lookup key
// is kept symmetric with FindMethod for a uniform API).
func FindField(cf *ClassFile, name, descriptor string) (*Field, bool) {
	for i := range cf.Fields {
		f := &cf.Fields[i]
		if fieldMatches(cf.ConstantPool, f, name, descriptor) {
			return f, true
		}
	}
	return nil, false
}

func fieldMatches(cp *ConstantPool, f *Field, name, descriptor string) bool {
	n, err := cp.Utf8(f.Name)
	if err != nil || string(n) != name {
		return false
	}
	d, err := cp.Utf8(f.Descriptor)
	if err != nil || string(d) != descriptor {
		return false
	}
	return true
}

// FindMethod looks up a method by name and descriptor — the only
// combination that uniquely identifies a method, since Java method
// overloading means name alone is not enough.
func FindMethod(cf *ClassFile, name, descriptor string) (*Method, bool) {
	for i := range cf.Methods {
		m := &cf.Methods[i]
		if methodMatches(cf.ConstantPool, m, name, descriptor) {
			return m, true
		}
	}
	return nil, false
}

func methodMatches(cp *ConstantPool, m *Method, name, descriptor string) bool {
	n, err := cp.Utf8(m.Name)
	if err != nil || string(n) != name {
		return false
	}
	d, err := cp.Utf8(m.Descriptor)
	if err != nil || string(d) != descriptor {
		return false
	}
	return true
}

// FirstAttribute returns the first attribute in attrs whose concrete
// type is T, for call sites that want e.g. the Code or SourceFile
// attribute without a manual type switch over every element.
func FirstAttribute[T Attribute](attrs []Attribute) (T, bool) {
	for _, a := range attrs {
		if t, ok := a.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// FieldDescriptorSlots returns the number of local-variable/operand-
// stack words a value of the given field descriptor occupies: 2 for
// long ("J") and double ("D"), 1 for everything else. Needed to walk a
// parameter list or a local variable table correctly.
func FieldDescriptorSlots(descriptor string) int {
	if descriptor == "J" || descriptor == "D" {
		return 2
	}
	return 1
}

// ParameterSlots returns the total local-variable slot width of a
// method descriptor's parameter list (excluding the implicit "this"
// for instance methods, which the caller must add itself).
func ParameterSlots(methodDescriptor string) int {
	if len(methodDescriptor) == 0 || methodDescriptor[0] != '(' {
		return 0
	}
	s := methodDescriptor[1:]
	slots := 0
	for len(s) > 0 && s[0] != ')' {
		rest, ok := scanFieldDescriptor(s, true)
		if !ok {
			return slots
		}
		consumed := s[:len(s)-len(rest)]
		slots += FieldDescriptorSlots(consumed)
		s = rest
	}
	return slots
}
