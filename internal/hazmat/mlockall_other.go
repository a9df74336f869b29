// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package hazmat

import "errors"

func lockMemory() error {
	return errors.ErrUnsupported
}
