// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build hpkehazmat

package logger

import (
	"log"
	"os"
)

type stderrTracer struct{ ll *log.Logger }

func (t stderrTracer) Printf(format string, v ...interface{}) {
	t.ll.Printf("hpke: "+format, v...)
}

func newTracer() tracer {
	return stderrTracer{ll: log.New(os.Stderr, "", log.Lmicroseconds)}
}
