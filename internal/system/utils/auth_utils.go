/*
 * Copyright (c) 2025, RefugeHub. (https://www.refugehub.org).
 *
 * RefugeHub licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"net"
	"net/http"
	"strings"

	"github.com/refugehub/privacy-data-service/internal/system/authn"
	"github.com/refugehub/privacy-data-service/internal/system/errors"
)

// AuthenticateRequest validates the bearer token on the given HTTP request and
// returns the authenticated user id. Both the Authorization header and the
// legacy x-auth-token header are accepted.
func AuthenticateRequest(r *http.Request) (string, error) {

	token := ""
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token = strings.TrimPrefix(authHeader, "Bearer ")
	} else if legacy := r.Header.Get("x-auth-token"); legacy != "" {
		token = legacy
	}

	if token == "" {
		return "", errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	userID, err := authn.ValidateTokenAndReturnUserID(token)
	if err != nil {
		return "", errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	return userID, nil
}

// ClientIP extracts the originating client address, honoring X-Forwarded-For.
func ClientIP(r *http.Request) string {

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
