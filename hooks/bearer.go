// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsFunc returns the claims to sign for an attempt.
type ClaimsFunc func(url string, p *request.Parameters) jwt.Claims

// BearerJWT returns a request interceptor which signs a fresh token for
// every attempt and sends it in the Authorization header, replacing
// any existing value under any capitalization.
func BearerJWT(method jwt.SigningMethod, key interface{}, claims ClaimsFunc) reqster.RequestInterceptor {
	if method == nil {
		panic("reqster/hooks: nil signing method")
	}
	if claims == nil {
		panic("reqster/hooks: nil claims func")
	}
	return func(_ context.Context, url string, p *request.Parameters) error {
		token, err := jwt.NewWithClaims(method, claims(url, p)).SignedString(key)
		if err != nil {
			return fmt.Errorf("reqster/hooks: sign token: %w", err)
		}
		setAuthorization(p.Headers, "Bearer "+token)
		return nil
	}
}

// Bearer returns a request interceptor which sends a fixed bearer
// token in the Authorization header.
func Bearer(token string) reqster.RequestInterceptor {
	return func(_ context.Context, _ string, p *request.Parameters) error {
		setAuthorization(p.Headers, "Bearer "+token)
		return nil
	}
}

func setAuthorization(h request.Headers, value string) {
	for k := range h {
		if k != "Authorization" && strings.EqualFold(k, "Authorization") {
			delete(h, k)
		}
	}
	h["Authorization"] = value
}
