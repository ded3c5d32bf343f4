// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/config"
	"github.com/gogama/reqster/request"
	"github.com/gogama/reqster/transport"
	"github.com/spf13/cobra"
)

func newMethodCommand(f *flags, method string, withData bool) *cobra.Command {
	use := strings.ToLower(method) + " ENDPOINT"
	short := "Send a " + method + " request"
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, f, method, args[0])
		},
	}
	if withData {
		cmd.Flags().StringVarP(&f.data, "data", "d", "", "JSON request body")
	}
	return cmd
}

func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	opts := []config.LoadOption{
		config.WithOverride(func(c *config.Config) {
			if f.baseURL != "" {
				c.BaseURL = f.baseURL
			}
			if cmd.Flags().Changed("timeout") {
				c.Timeout = f.timeout
			}
			if cmd.Flags().Changed("retries") {
				c.Retry.Max = f.retries
			}
			if f.verbose {
				c.Log.Level = "debug"
				c.Log.Format = "console"
			} else if c.Log.Level == "" {
				c.Log.Level = "warn"
			}
		}),
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	return config.Load(f.configFile, opts...)
}

func runRequest(cmd *cobra.Command, f *flags, method, endpoint string) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	headers, err := parseHeaders(f.headers)
	if err != nil {
		return err
	}
	params, err := parseQuery(f.params)
	if err != nil {
		return err
	}
	o := request.Options{
		Method:            method,
		Headers:           headers,
		Params:            params,
		TransformResponse: reqster.TransformIdentityResponse,
	}
	if f.data != "" {
		var data interface{}
		if err := json.Unmarshal([]byte(f.data), &data); err != nil {
			return fmt.Errorf("reqster: --data is not valid JSON: %w", err)
		}
		o.Data = data
	}

	client := cfg.NewClient(&transport.Executor{}, cfg.Logger(cmd.ErrOrStderr()))
	p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), f.noColor)

	v, err := client.Request(cmd.Context(), endpoint, o)
	var rerr *reqster.Error
	if errors.As(err, &rerr) && rerr.Response != nil {
		p.errorResponse(rerr.Response, f.verbose)
		return err
	} else if err != nil {
		return err
	}

	return p.response(v.(request.Response), f.selector, f.verbose)
}

// parseHeaders parses "Name: value" pairs.
func parseHeaders(pairs []string) (request.Headers, error) {
	h := request.Headers{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("reqster: invalid header %q, want \"Name: value\"", pair)
		}
		h[name] = strings.TrimSpace(value)
	}
	return h, nil
}
