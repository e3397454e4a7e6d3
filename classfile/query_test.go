/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "testing"

func buildSimpleClassFile(t *testing.T) *ClassFile {
	t.Helper()
	// constant pool: #1 Utf8 "Sub", #2 Class -> #1 (this),
	// #3 Utf8 "Base", #4 Class -> #3 (super),
	// #5 Utf8 "count", #6 Utf8 "I" (field name/descriptor),
	// #7 Utf8 "run", #8 Utf8 "()V" (method name/descriptor)
	b := []byte{
		0xCA, 0xFE, 0xBA, 0xBE,
		0x00, 0x00,
		0x00, 0x34,
		0x00, 0x09, // constant_pool_count
		tagUtf8, 0x00, 0x03, 'S', 'u', 'b', // #1
		tagClass, 0x00, 0x01, // #2
		tagUtf8, 0x00, 0x04, 'B', 'a', 's', 'e', // #3
		tagClass, 0x00, 0x03, // #4
		tagUtf8, 0x00, 0x05, 'c', 'o', 'u', 'n', 't', // #5
		tagUtf8, 0x00, 0x01, 'I', // #6
		tagUtf8, 0x00, 0x03, 'r', 'u', 'n', // #7
		tagUtf8, 0x00, 0x03, '(', ')', 'V', // #8
		0x00, 0x20, // access_flags
		0x00, 0x02, // this_class -> #2
		0x00, 0x04, // super_class -> #4
		0x00, 0x00, // interfaces_count
		0x00, 0x01, // fields_count
		0x00, 0x01, // field access_flags
		0x00, 0x05, // field name -> #5
		0x00, 0x06, // field descriptor -> #6
		0x00, 0x00, // field attributes_count
		0x00, 0x01, // methods_count
		0x00, 0x01, // method access_flags
		0x00, 0x07, // method name -> #7
		0x00, 0x08, // method descriptor -> #8
		0x00, 0x00, // method attributes_count
		0x00, 0x00, // class attributes_count
	}
	cf, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	return cf
}

func TestThisAndSuperClassName(t *testing.T) {
	cf := buildSimpleClassFile(t)
	this, err := ThisClassName(cf)
	if err != nil || this != "Sub" {
		t.Fatalf("ThisClassName() = %q, %v; want Sub, nil", this, err)
	}
	super, err := SuperClassName(cf)
	if err != nil || super != "Base" {
		t.Fatalf("SuperClassName() = %q, %v; want Base, nil", super, err)
	}
}

func TestSuperClassNameZeroPointerFallsBackToObject(t *testing.T) {
	cf := &ClassFile{ConstantPool: &ConstantPool{entries: []Entry{absentEntry{}}}, Super: 0}
	name, err := SuperClassName(cf)
	if err != nil || name != "java/lang/Object" {
		t.Fatalf("SuperClassName() = %q, %v; want java/lang/Object, nil", name, err)
	}
}

func TestFindFieldAndMethod(t *testing.T) {
	cf := buildSimpleClassFile(t)
	f, ok := FindField(cf, "count", "I")
	if !ok || f == nil {
		t.Fatal("FindField(count, I): not found")
	}
	if _, ok := FindField(cf, "count", "J"); ok {
		t.Fatal("FindField(count, J): should not match (wrong descriptor)")
	}

	m, ok := FindMethod(cf, "run", "()V")
	if !ok || m == nil {
		t.Fatal("FindMethod(run, ()V): not found")
	}
	if _, ok := FindMethod(cf, "missing", "()V"); ok {
		t.Fatal("FindMethod(missing, ()V): should not be found")
	}
}

func TestFirstAttribute(t *testing.T) {
	attrs := []Attribute{
		SyntheticAttribute{NameStr: attrSynthetic},
		SourceFileAttribute{NameStr: attrSourceFile, SourceFile: 3},
	}
	sf, ok := FirstAttribute[SourceFileAttribute](attrs)
	if !ok || sf.SourceFile.Index() != 3 {
		t.Fatalf("FirstAttribute[SourceFileAttribute] = %+v, %v", sf, ok)
	}
	if _, ok := FirstAttribute[CodeAttribute](attrs); ok {
		t.Fatal("FirstAttribute[CodeAttribute]: found one that isn't there")
	}
}

func TestFieldDescriptorSlots(t *testing.T) {
	cases := map[string]int{
		"I": 1, "Z": 1, "Ljava/lang/Object;": 1, "[J": 1,
		"J": 2, "D": 2,
	}
	for desc, want := range cases {
		if got := FieldDescriptorSlots(desc); got != want {
			t.Errorf("FieldDescriptorSlots(%q) = %d, want %d", desc, got, want)
		}
	}
}

func TestParameterSlots(t *testing.T) {
	cases := map[string]int{
		"()V":                    0,
		"(I)V":                   1,
		"(JD)V":                  4,
		"(Ljava/lang/String;I)Z": 2,
		"([IJ)V":                 3,
	}
	for desc, want := range cases {
		if got := ParameterSlots(desc); got != want {
			t.Errorf("ParameterSlots(%q) = %d, want %d", desc, got, want)
		}
	}
}
