// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package query serializes nested parameter bags into URL query strings
using the bracket convention understood by most PHP and Rails style
back ends.

A Bag keeps its parameters in insertion order, so the serialized form
is stable:

	b := query.New(
		"str", "tsc",
		"bool", true,
		"case", []string{"SEND", "RECEIVED"},
		"sort", query.New("created", -1),
	)
	query.Encode(b) // str=tsc&bool=true&case[]=SEND&case[]=RECEIVED&sort[created]=-1

Note that the first level of nesting is not itself bracketed, and that
array values inside a nested bag are emitted under their own key only:

	query.Encode(query.New("filter", query.New("type", "X")))
	// filter[type]=X
	query.Encode(query.New("filter", query.New("type", []string{"A", "B"})))
	// type[]=A&type[]=B

Existing servers depend on this exact output, so it is preserved.
*/
package query
