// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads client configuration from a file, the
// environment and an optional .env file, and turns it into client
// settings, a logger and a set of interceptors.
//
// Values are resolved in this order, later sources winning: built-in
// defaults, the config file (YAML or JSON), the .env file, and finally
// REQSTER_* environment variables. Nested keys map to environment
// variables by joining with underscores, so retry.max is read from
// REQSTER_RETRY_MAX.
//
//	cfg, err := config.Load("reqster.yml", config.WithEnvFile(".env"))
//	if err != nil {
//		return err
//	}
//	client := cfg.NewClient(&transport.Executor{}, cfg.Logger(os.Stderr))
package config
