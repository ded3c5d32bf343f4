// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport-level failures raised by an
// executor. Executors use it to tell a deadline expiry, which must be
// reported as a timeout error, from other transport faults; callers use
// it to decide whether a failed call is worth re-issuing.
package transient
