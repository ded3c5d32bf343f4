// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the reqster command line client.
package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// flags holds the values of the persistent flags.
type flags struct {
	configFile string
	envFile    string
	baseURL    string
	headers    []string
	params     []string
	data       string
	timeout    time.Duration
	retries    int
	selector   string
	noColor    bool
	verbose    bool
}

// NewRootCommand returns the reqster command with all its subcommands.
func NewRootCommand() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:     "reqster",
		Short:   "Send HTTP requests through the reqster pipeline",
		Version: version,
		Long: `reqster sends HTTP requests to a JSON API. Settings come from an
optional config file, a .env file, REQSTER_* environment variables and
command line flags, in increasing order of precedence.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "config file (YAML or JSON)")
	pf.StringVar(&f.envFile, "env-file", "", ".env file with REQSTER_* variables")
	pf.StringVar(&f.baseURL, "base-url", "", "base URL prepended to every endpoint")
	pf.StringArrayVarP(&f.headers, "header", "H", nil, `request header "Name: value" (repeatable)`)
	pf.StringArrayVarP(&f.params, "query", "q", nil, "query parameter key=value; dots nest keys, repeated keys make arrays")
	pf.DurationVarP(&f.timeout, "timeout", "t", 0, "per-attempt timeout")
	pf.IntVar(&f.retries, "retries", 0, "retries on 429, 502, 503 and 504 responses")
	pf.StringVar(&f.selector, "select", "", "print only the part of the JSON body matching this GJSON path")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "print the status line, headers and debug logs")

	for _, method := range []string{"GET", "DELETE", "OPTIONS"} {
		root.AddCommand(newMethodCommand(f, method, false))
	}
	for _, method := range []string{"POST", "PUT", "PATCH"} {
		root.AddCommand(newMethodCommand(f, method, true))
	}
	root.AddCommand(newConfigCommand(f))

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
