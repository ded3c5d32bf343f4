// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrReaderBody is returned by BodyBytes for io.Reader data. A retried
// call rebuilds its body from the original data, and a reader would be
// empty on every attempt after the first.
var ErrReaderBody = errors.New("reqster/request: io.Reader data cannot be re-sent on retry " +
	"(use string, []byte or json.RawMessage)")

// BodyBytes converts raw call data to a request body without encoding
// it. It backs the raw request transform, for callers who send bodies
// that are already encoded.
//
// Nil data gives a nil body. Strings, byte slices and json.RawMessage
// values give their bytes, and the returned slice may share memory with
// data. Readers are refused with ErrReaderBody. Any other type is an
// error.
func BodyBytes(data interface{}) ([]byte, error) {
	switch x := data.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case json.RawMessage:
		return x, nil
	case io.Reader:
		return nil, ErrReaderBody
	default:
		return nil, fmt.Errorf("reqster/request: raw body cannot be %T (use nil, string, []byte or json.RawMessage)", data)
	}
}
