/*
 * classfile - a Java .class file reader
 * Copyright (c) 2026 by the classfile Authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"fmt"
	"os"
)

// Trace, when true, makes Decode narrate its progress to os.Stderr: one
// line per constant-pool entry decoded, one per attribute dispatched,
// one per class file completed. It never affects control flow or the
// returned error — tracing is diagnostics, not error reporting.
//
// Off by default.
var Trace = false

func tracef(format string, args ...any) {
	if !Trace {
		return
	}
	fmt.Fprintf(os.Stderr, "classfile: "+format+"\n", args...)
}
