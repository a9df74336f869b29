// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "filippo.io/hpke/internal/hazmat"

// LockMemory attempts to lock the calling process's memory into RAM using
// mlockall(2), so that secret key material this package handles is never
// written to swap. It is a best-effort hardening primitive: callers that
// need the guarantee should check the returned error, and callers that
// don't care may ignore it. Unlike typical CLI tools, this package never
// calls LockMemory on its own, since a library must not impose a global
// process side effect on every importer.
//
// LockMemory is only implemented on Linux; on other platforms it returns
// errors.ErrUnsupported.
func LockMemory() error {
	return hazmat.LockMemory()
}
