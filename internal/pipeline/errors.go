// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import "errors"

// ErrPanicRecovered wraps the value of a panic recovered while serving a
// request.
var ErrPanicRecovered = errors.New("panic recovered")
