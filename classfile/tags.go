/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// Constant pool tag bytes (JVMS 4.4).
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldRef           = 9
	tagMethodRef          = 10
	tagInterfaceMethodRef = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// MagicNumber is the required first four bytes of every class file.
const MagicNumber uint32 = 0xCAFEBABE

// MinSupportedMajor and MaxMajorVersion bound the accepted major
// version. MaxMajorVersion is a package variable rather than a
// constant, so an embedder tracking a newer JVMS can raise the ceiling
// without recompiling the tag tables.
const MinSupportedMajor = 45

var MaxMajorVersion uint16 = 65

// Class-level access flag bits (JVMS 4.1 Table 4.1-A).
const (
	AccPublic     uint16 = 0x0001
	AccFinal      uint16 = 0x0010
	AccSuper      uint16 = 0x0020
	AccInterface  uint16 = 0x0200
	AccAbstract   uint16 = 0x0400
	AccSynthetic  uint16 = 0x1000
	AccAnnotation uint16 = 0x2000
	AccEnum       uint16 = 0x4000
	AccModule     uint16 = 0x8000
)

// Field access flag bits.
const (
	AccFieldPublic    uint16 = 0x0001
	AccFieldPrivate   uint16 = 0x0002
	AccFieldProtected uint16 = 0x0004
	AccFieldStatic    uint16 = 0x0008
	AccFieldFinal     uint16 = 0x0010
	AccFieldVolatile  uint16 = 0x0040
	AccFieldTransient uint16 = 0x0080
	AccFieldSynthetic uint16 = 0x1000
	AccFieldEnum      uint16 = 0x4000
)

// Method access flag bits.
const (
	AccMethodPublic       uint16 = 0x0001
	AccMethodPrivate      uint16 = 0x0002
	AccMethodProtected    uint16 = 0x0004
	AccMethodStatic       uint16 = 0x0008
	AccMethodFinal        uint16 = 0x0010
	AccMethodSynchronized uint16 = 0x0020
	AccMethodBridge       uint16 = 0x0040
	AccMethodVarargs      uint16 = 0x0080
	AccMethodNative       uint16 = 0x0100
	AccMethodAbstract     uint16 = 0x0400
	AccMethodStrict       uint16 = 0x0800
	AccMethodSynthetic    uint16 = 0x1000
)

// Inner-class access flag bits.
const (
	AccInnerPublic     uint16 = 0x0001
	AccInnerPrivate    uint16 = 0x0002
	AccInnerProtected  uint16 = 0x0004
	AccInnerStatic     uint16 = 0x0008
	AccInnerFinal      uint16 = 0x0010
	AccInnerInterface  uint16 = 0x0200
	AccInnerAbstract   uint16 = 0x0400
	AccInnerSynthetic  uint16 = 0x1000
	AccInnerAnnotation uint16 = 0x2000
	AccInnerEnum       uint16 = 0x4000
)

// Module flag bits.
const (
	AccModuleOpen      uint16 = 0x0020
	AccModuleSynthetic uint16 = 0x1000
	AccModuleMandated  uint16 = 0x8000
)

// Module-requires flag bits.
const (
	AccRequiresTransitive  uint16 = 0x0020
	AccRequiresStaticPhase uint16 = 0x0040
	AccRequiresSynthetic   uint16 = 0x1000
	AccRequiresMandated    uint16 = 0x8000
)

// Module exports/opens flag bits.
const (
	AccExportsSynthetic uint16 = 0x1000
	AccExportsMandated  uint16 = 0x8000
)

// Method-parameter flag bits.
const (
	AccParamFinal     uint16 = 0x0010
	AccParamSynthetic uint16 = 0x1000
	AccParamMandated  uint16 = 0x8000
)

const (
	maskClass uint16 = AccPublic | AccFinal | AccSuper | AccInterface | AccAbstract |
		AccSynthetic | AccAnnotation | AccEnum | AccModule
	maskField uint16 = AccFieldPublic | AccFieldPrivate | AccFieldProtected | AccFieldStatic |
		AccFieldFinal | AccFieldVolatile | AccFieldTransient | AccFieldSynthetic | AccFieldEnum
	maskMethod uint16 = AccMethodPublic | AccMethodPrivate | AccMethodProtected | AccMethodStatic |
		AccMethodFinal | AccMethodSynchronized | AccMethodBridge | AccMethodVarargs |
		AccMethodNative | AccMethodAbstract | AccMethodStrict | AccMethodSynthetic
	maskInnerClass uint16 = AccInnerPublic | AccInnerPrivate | AccInnerProtected | AccInnerStatic |
		AccInnerFinal | AccInnerInterface | AccInnerAbstract | AccInnerSynthetic |
		AccInnerAnnotation | AccInnerEnum
	maskModule   uint16 = AccModuleOpen | AccModuleSynthetic | AccModuleMandated
	maskRequires uint16 = AccRequiresTransitive | AccRequiresStaticPhase | AccRequiresSynthetic | AccRequiresMandated
	maskExports  uint16 = AccExportsSynthetic | AccExportsMandated
	maskParam    uint16 = AccParamFinal | AccParamSynthetic | AccParamMandated
)

// validFlags reports whether bits sets only sanctioned bits
// under mask.
func validFlags(bits, mask uint16) bool {
	return bits&^mask == 0
}
