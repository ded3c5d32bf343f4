// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/gjson"
)

type colorScheme struct {
	statusOK    *color.Color
	statusError *color.Color
	headerKey   *color.Color
	headerValue *color.Color
}

func defaultColorScheme() *colorScheme {
	return &colorScheme{
		statusOK:    color.New(color.FgGreen, color.Bold),
		statusError: color.New(color.FgRed, color.Bold),
		headerKey:   color.New(color.FgYellow),
		headerValue: color.New(color.FgWhite),
	}
}

func (s *colorScheme) disable() {
	s.statusOK.DisableColor()
	s.statusError.DisableColor()
	s.headerKey.DisableColor()
	s.headerValue.DisableColor()
}

// printer writes bodies to out and everything else to errOut.
type printer struct {
	out    io.Writer
	errOut io.Writer
	colors *colorScheme
}

func newPrinter(out, errOut io.Writer, noColor bool) *printer {
	p := &printer{out: out, errOut: errOut, colors: defaultColorScheme()}
	if noColor || !isTerminal(errOut) {
		p.colors.disable()
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) status(ok bool, status int, headers map[string]string) {
	c := p.colors.statusOK
	if !ok {
		c = p.colors.statusError
	}
	c.Fprintf(p.errOut, "HTTP %d\n", status)

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.colors.headerKey.Fprint(p.errOut, name)
		fmt.Fprint(p.errOut, ": ")
		p.colors.headerValue.Fprintln(p.errOut, headers[name])
	}
	fmt.Fprintln(p.errOut)
}

// response prints a successful response. If selector is set, the body
// must be JSON and only the matching part is printed.
func (p *printer) response(r request.Response, selector string, verbose bool) error {
	if verbose {
		p.status(r.OK(), r.Status(), r.Header().All())
	}
	body, err := r.Text()
	if err != nil {
		return err
	}

	if selector != "" {
		if !gjson.Valid(body) {
			return fmt.Errorf("reqster: --select needs a JSON body")
		}
		res := gjson.Get(body, selector)
		if !res.Exists() {
			return fmt.Errorf("reqster: %q matches nothing", selector)
		}
		if res.IsObject() || res.IsArray() {
			p.body(res.Raw)
		} else {
			fmt.Fprintln(p.out, res.String())
		}
		return nil
	}

	p.body(body)
	return nil
}

func (p *printer) errorResponse(r *reqster.ResponseInfo, verbose bool) {
	if verbose {
		p.status(r.OK, r.Status, r.Headers)
	}
	p.body(r.Body)
}

// body prints JSON indented and anything else as is.
func (p *printer) body(body string) {
	if body == "" {
		return
	}
	var buf bytes.Buffer
	if json.Valid([]byte(body)) && json.Indent(&buf, []byte(body), "", "  ") == nil {
		buf.WriteByte('\n')
		_, _ = buf.WriteTo(p.out)
		return
	}
	fmt.Fprintln(p.out, body)
}
