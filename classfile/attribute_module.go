/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// The Module attribute family and BootstrapMethods (JVMS 4.7.25 /
// 4.7.23). The shape follows the same cursor/Pointer/accessFlags idiom
// the rest of this package already established for Code and the
// constant pool, reusing validFlags against the module-specific masks
// from tags.go.

type RequiresEntry struct {
	Module  Pointer[ModuleEntry]
	Flags   uint16
	Version Pointer[Utf8Entry] // zero: no version recorded
}

type ExportsEntry struct {
	Package Pointer[PackageEntry]
	Flags   uint16
	To      []Pointer[ModuleEntry] // empty: exported to all modules
}

type OpensEntry struct {
	Package Pointer[PackageEntry]
	Flags   uint16
	To      []Pointer[ModuleEntry] // empty: opened to all modules
}

type ProvidesEntry struct {
	Service Pointer[ClassEntry]
	With    []Pointer[ClassEntry]
}

type ModuleAttribute struct {
	NameStr  string
	Module   Pointer[ModuleEntry]
	Flags    uint16
	Version  Pointer[Utf8Entry] // zero: no version recorded
	Requires []RequiresEntry
	Exports  []ExportsEntry
	Opens    []OpensEntry
	Uses     []Pointer[ClassEntry]
	Provides []ProvidesEntry
}

func (a ModuleAttribute) AttributeName() string { return a.NameStr }

func decodeModuleAttribute(c *cursor, name string) (Attribute, error) {
	mod, err := readPointer[ModuleEntry](c)
	if err != nil {
		return nil, errors.Wrap(err, "Module module_name_index")
	}
	flags, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Module module_flags")
	}
	if !validFlags(flags, maskModule) {
		return nil, errors.Wrapf(ErrInvalidAccessFlags, "Module module_flags: 0x%04X", flags)
	}
	version, err := readPointer[Utf8Entry](c)
	if err != nil {
		return nil, errors.Wrap(err, "Module module_version_index")
	}

	requiresCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Module requires_count")
	}
	requires := make([]RequiresEntry, requiresCount)
	for i := range requires {
		m, err := readPointer[ModuleEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Module requires %d requires_index", i)
		}
		f, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "Module requires %d requires_flags", i)
		}
		if !validFlags(f, maskRequires) {
			return nil, errors.Wrapf(ErrInvalidAccessFlags, "Module requires %d: 0x%04X", i, f)
		}
		v, err := readPointer[Utf8Entry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Module requires %d requires_version_index", i)
		}
		requires[i] = RequiresEntry{Module: m, Flags: f, Version: v}
	}

	exportsCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Module exports_count")
	}
	exports := make([]ExportsEntry, exportsCount)
	for i := range exports {
		p, err := readPointer[PackageEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Module exports %d exports_index", i)
		}
		f, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "Module exports %d exports_flags", i)
		}
		if !validFlags(f, maskExports) {
			return nil, errors.Wrapf(ErrInvalidAccessFlags, "Module exports %d: 0x%04X", i, f)
		}
		to, err := decodePointerList[ModuleEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Module exports %d exports_to", i)
		}
		exports[i] = ExportsEntry{Package: p, Flags: f, To: to}
	}

	opensCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Module opens_count")
	}
	opens := make([]OpensEntry, opensCount)
	for i := range opens {
		p, err := readPointer[PackageEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Module opens %d opens_index", i)
		}
		f, err := c.readU16()
		if err != nil {
			return nil, errors.Wrapf(err, "Module opens %d opens_flags", i)
		}
		if !validFlags(f, maskExports) { // opens uses the same synthetic/mandated bits as exports
			return nil, errors.Wrapf(ErrInvalidAccessFlags, "Module opens %d: 0x%04X", i, f)
		}
		to, err := decodePointerList[ModuleEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Module opens %d opens_to", i)
		}
		opens[i] = OpensEntry{Package: p, Flags: f, To: to}
	}

	uses, err := decodePointerList[ClassEntry](c)
	if err != nil {
		return nil, errors.Wrap(err, "Module uses_index")
	}

	providesCount, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "Module provides_count")
	}
	provides := make([]ProvidesEntry, providesCount)
	for i := range provides {
		svc, err := readPointer[ClassEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Module provides %d provides_index", i)
		}
		with, err := decodePointerList[ClassEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "Module provides %d provides_with", i)
		}
		provides[i] = ProvidesEntry{Service: svc, With: with}
	}

	return ModuleAttribute{
		NameStr:  name,
		Module:   mod,
		Flags:    flags,
		Version:  version,
		Requires: requires,
		Exports:  exports,
		Opens:    opens,
		Uses:     uses,
		Provides: provides,
	}, nil
}

type ModulePackagesAttribute struct {
	NameStr  string
	Packages []Pointer[PackageEntry]
}

func (a ModulePackagesAttribute) AttributeName() string { return a.NameStr }

type ModuleMainClassAttribute struct {
	NameStr   string
	MainClass Pointer[ClassEntry]
}

func (a ModuleMainClassAttribute) AttributeName() string { return a.NameStr }

// BootstrapMethodEntry pairs a MethodHandle with its static arguments
// (JVMS 4.7.23): the table invokedynamic/Dynamic constant pool entries
// index into via BootstrapMethodAttrIndex.
type BootstrapMethodEntry struct {
	Method    Pointer[MethodHandleEntry]
	Arguments []Pointer[Entry]
}

type BootstrapMethodsAttribute struct {
	NameStr string
	Methods []BootstrapMethodEntry
}

func (a BootstrapMethodsAttribute) AttributeName() string { return a.NameStr }

func decodeBootstrapMethodsAttribute(c *cursor, name string) (Attribute, error) {
	n, err := c.readU16()
	if err != nil {
		return nil, errors.Wrap(err, "BootstrapMethods num_bootstrap_methods")
	}
	methods := make([]BootstrapMethodEntry, n)
	for i := range methods {
		mh, err := readPointer[MethodHandleEntry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "BootstrapMethods entry %d bootstrap_method_ref", i)
		}
		args, err := decodePointerList[Entry](c)
		if err != nil {
			return nil, errors.Wrapf(err, "BootstrapMethods entry %d bootstrap_arguments", i)
		}
		methods[i] = BootstrapMethodEntry{Method: mh, Arguments: args}
	}
	return BootstrapMethodsAttribute{NameStr: name, Methods: methods}, nil
}
