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

package sanitizer

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/refugehub/privacy-data-service/internal/system/log"
)

// Middleware returns an HTTP middleware that sanitizes JSON request bodies and
// query parameters before they reach route handlers. Bodies that are not JSON
// objects pass through untouched; a handler-level decode reports those.
func (s *Sanitizer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if query := r.URL.Query(); len(query) > 0 {
			s.SanitizeQuery(query)
			r.URL.RawQuery = query.Encode()
		}

		if r.Body != nil && r.ContentLength != 0 && isJSONRequest(r) {
			raw, err := io.ReadAll(r.Body)
			_ = r.Body.Close()
			if err != nil {
				logger := log.GetLogger()
				if logger != nil {
					logger.Debug("Failed to read request body for sanitization", log.Error(err))
				}
				r.Body = io.NopCloser(bytes.NewReader(nil))
				next.ServeHTTP(w, r)
				return
			}

			body := map[string]interface{}{}
			if err := json.Unmarshal(raw, &body); err == nil {
				s.SanitizeBody(body)
				if sanitized, err := json.Marshal(body); err == nil {
					raw = sanitized
				}
			}

			r.Body = io.NopCloser(bytes.NewReader(raw))
			r.ContentLength = int64(len(raw))
		}

		next.ServeHTTP(w, r)
	})
}

func isJSONRequest(r *http.Request) bool {

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		// Clients frequently omit the header on JSON posts; try anyway.
		return true
	}
	return strings.Contains(contentType, "application/json")
}
