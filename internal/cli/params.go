// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/gogama/reqster/query"
)

// paramTree collects key=value flags in first-seen key order.
type paramTree struct {
	keys   []string
	values map[string][]string
	kids   map[string]*paramTree
}

func newParamTree() *paramTree {
	return &paramTree{
		values: map[string][]string{},
		kids:   map[string]*paramTree{},
	}
}

func (t *paramTree) seen(key string) bool {
	_, v := t.values[key]
	_, k := t.kids[key]
	return v || k
}

func (t *paramTree) insert(path []string, value string) error {
	key := path[0]
	if key == "" {
		return fmt.Errorf("empty key segment")
	}
	if !t.seen(key) {
		t.keys = append(t.keys, key)
	}
	if len(path) == 1 {
		if _, ok := t.kids[key]; ok {
			return fmt.Errorf("key %q is both a value and an object", key)
		}
		t.values[key] = append(t.values[key], value)
		return nil
	}
	if _, ok := t.values[key]; ok {
		return fmt.Errorf("key %q is both a value and an object", key)
	}
	kid, ok := t.kids[key]
	if !ok {
		kid = newParamTree()
		t.kids[key] = kid
	}
	return kid.insert(path[1:], value)
}

func (t *paramTree) bag() query.Bag {
	var b query.Bag
	for _, key := range t.keys {
		if kid, ok := t.kids[key]; ok {
			b = b.Add(key, kid.bag())
			continue
		}
		vs := t.values[key]
		if len(vs) == 1 {
			b = b.Add(key, vs[0])
		} else {
			b = b.Add(key, vs)
		}
	}
	return b
}

// parseQuery turns key=value flags into a query bag. A dotted key such
// as sort.created nests, and a key given more than once becomes an
// array.
func parseQuery(pairs []string) (query.Bag, error) {
	t := newParamTree()
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("reqster: invalid query %q, want key=value", pair)
		}
		if err := t.insert(strings.Split(key, "."), value); err != nil {
			return nil, fmt.Errorf("reqster: invalid query %q: %w", pair, err)
		}
	}
	return t.bag(), nil
}
