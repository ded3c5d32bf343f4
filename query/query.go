// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// A Param is a single key/value pair within a Bag.
//
// Value may be nil (the parameter is skipped), a string, a bool, any
// integer or floating point kind, a slice or array of scalars, a
// nested Bag, or a map[string]interface{}. Floats are written the way
// JavaScript writes numbers, so 1e21 becomes "1e+21".
type Param struct {
	Key   string
	Value interface{}
}

// A Bag is an ordered collection of query parameters. Parameters are
// serialized in the order they appear in the Bag.
type Bag []Param

// New builds a Bag from alternating keys and values. It panics if kv
// has an odd length or if a key is not a string.
func New(kv ...interface{}) Bag {
	if len(kv)%2 != 0 {
		panic("reqster/query: odd number of arguments to New")
	}
	b := make(Bag, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("reqster/query: key at position %d is %T, not string", i, kv[i]))
		}
		b = append(b, Param{Key: k, Value: kv[i+1]})
	}
	return b
}

// Add appends a parameter to the end of the bag and returns the bag.
func (b Bag) Add(key string, value interface{}) Bag {
	return append(b, Param{Key: key, Value: value})
}

// Empty reports whether the bag has no parameters. A bag containing
// only nil values is not empty, although it encodes to "".
func (b Bag) Empty() bool {
	return len(b) == 0
}

// Encode serializes b into a query string without a leading "?". The
// result for an empty bag is the empty string.
func Encode(b Bag) string {
	return Serialize(b, "")
}

// Serialize serializes b into a query string, nesting every scalar
// key under prefix when prefix is non-empty.
func Serialize(b Bag, prefix string) string {
	terms := make([]string, 0, len(b))
	for _, p := range b {
		if t := term(p.Key, p.Value, prefix); t != "" {
			terms = append(terms, t)
		}
	}
	return strings.Join(terms, "&")
}

func term(key string, value interface{}, prefix string) string {
	if value == nil {
		return ""
	}

	switch x := value.(type) {
	case Bag:
		return Serialize(x, nestedPrefix(prefix, key))
	case map[string]interface{}:
		return Serialize(fromMap(x), nestedPrefix(prefix, key))
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return ""
		}
		return term(key, v.Elem().Interface(), prefix)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return ""
		}
		if v.Type().Elem().Kind() == reflect.Uint8 && v.Kind() == reflect.Slice {
			return scalar(key, string(v.Bytes()), prefix)
		}
		elems := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elems = append(elems, EscapeComponent(key)+"[]="+EscapeComponent(stringify(v.Index(i).Interface())))
		}
		return strings.Join(elems, "&")
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return ""
		}
		m := make(map[string]interface{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return Serialize(fromMap(m), nestedPrefix(prefix, key))
	}

	return scalar(key, stringify(value), prefix)
}

func scalar(key, value, prefix string) string {
	if prefix != "" {
		return prefix + "[" + EscapeComponent(key) + "]=" + EscapeComponent(value)
	}
	return EscapeComponent(key) + "=" + EscapeComponent(value)
}

// nestedPrefix only brackets a key once a prefix is already active.
func nestedPrefix(prefix, key string) string {
	if prefix != "" {
		return prefix + "[" + key + "]"
	}
	return key
}

func fromMap(m map[string]interface{}) Bag {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b := make(Bag, 0, len(keys))
	for _, k := range keys {
		b = append(b, Param{Key: k, Value: m[k]})
	}
	return b
}

func stringify(value interface{}) string {
	switch x := value.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(x).Int(), 10)
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return strconv.FormatUint(reflect.ValueOf(x).Uint(), 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// formatFloat formats f the way JavaScript converts a number to a
// string: plain decimal for magnitudes in [1e-6, 1e21), otherwise the
// shortest exponent form without zero padding ("1e+21", "1.5e-7").
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, bitSize), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// EscapeComponent escapes s the way a URI component is escaped by
// browsers: every byte except ASCII letters, digits and the marks
// - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
func EscapeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&15])
		}
	}
	return sb.String()
}

const upperhex = "0123456789ABCDEF"

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
