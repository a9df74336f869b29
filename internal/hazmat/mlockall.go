// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hazmat holds optional, platform-specific hardening that the hpke
// package does not enable on its own. Callers that want it must opt in
// explicitly; nothing in this package runs from an init function, because a
// library must never impose process-wide side effects like locking all of
// memory on whatever else shares the address space.
package hazmat

// LockMemory requests that the operating system keep the current process's
// memory resident and out of swap, for the lifetime of the process. It is a
// best-effort hardening measure against secret material (AEAD keys, KEM
// private keys, PSKs) being written to a swap device or included in a core
// dump; it is not a substitute for zeroing buffers once they are no longer
// needed, which the hpke package's PrivateKey.Destroy and Context.Destroy
// already do unconditionally.
//
// LockMemory is only implemented on Linux, where it wraps mlockall(2); on
// every other platform it returns ErrUnsupported.
func LockMemory() error {
	return lockMemory()
}
