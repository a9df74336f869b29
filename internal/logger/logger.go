// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger provides the package-internal debug trace used by the hpke
// package. Call sites are compiled into every build; only the tracer behind
// them depends on the hpkehazmat build tag, and the default tracer in
// logger_off.go discards every call.
package logger

// Logger is the package-internal debug trace interface. The production
// implementation in logger_off.go discards everything; logger_hazmat.go,
// built only with the hpkehazmat tag, writes to stderr including secret
// material, and must never be enabled outside of a throwaway debugging
// session.
type Logger struct {
	ll tracer
}

type tracer interface {
	Printf(format string, v ...interface{})
}

// Global is the single trace sink used throughout the hpke package.
var Global = &Logger{ll: newTracer()}

// Tracef logs a formatted trace line. In ordinary builds this is a no-op;
// under hpkehazmat it may include key material, so never build with that tag
// outside of local debugging.
func (l *Logger) Tracef(format string, v ...interface{}) {
	l.ll.Printf(format, v...)
}
