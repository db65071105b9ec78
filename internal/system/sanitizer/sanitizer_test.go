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
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSanitizer() *Sanitizer {
	return New(DefaultRules())
}

func TestSanitizeBodyTagFields(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{"tags": "a, b , c"}
	s.SanitizeBody(body)
	assert.Equal(t, []string{"a", "b", "c"}, body["tags"])

	body = map[string]interface{}{"tags": " , , "}
	s.SanitizeBody(body)
	assert.Equal(t, []string{}, body["tags"])

	existing := []interface{}{"x", "y"}
	body = map[string]interface{}{"tags": existing}
	s.SanitizeBody(body)
	assert.Equal(t, existing, body["tags"])

	body = map[string]interface{}{"tags": 42}
	s.SanitizeBody(body)
	assert.Equal(t, []string{}, body["tags"])
}

func TestSanitizeBodyNumericFields(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{"goal": "150.50"}
	s.SanitizeBody(body)
	assert.Equal(t, 150.50, body["goal"])

	// Required numeric fields are removed when unparseable so required-field
	// validation fires instead of persisting zero.
	body = map[string]interface{}{"goal": "abc"}
	s.SanitizeBody(body)
	_, present := body["goal"]
	assert.False(t, present)

	// Optional numeric fields default to zero.
	body = map[string]interface{}{"quantity": "abc"}
	s.SanitizeBody(body)
	assert.Equal(t, float64(0), body["quantity"])

	body = map[string]interface{}{"raised": float64(25)}
	s.SanitizeBody(body)
	assert.Equal(t, float64(25), body["raised"])
}

func TestSanitizeBodyDateFields(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{"deadline": "2026-03-15"}
	s.SanitizeBody(body)
	parsed, ok := body["deadline"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())

	body = map[string]interface{}{"startDate": "2026-03-15T10:30:00Z"}
	s.SanitizeBody(body)
	_, ok = body["startDate"].(time.Time)
	assert.True(t, ok)

	// Unparseable dates are dropped rather than defaulted.
	body = map[string]interface{}{"endDate": "not a date"}
	s.SanitizeBody(body)
	_, present := body["endDate"]
	assert.False(t, present)
}

func TestSanitizeBodyBooleanFields(t *testing.T) {
	s := newTestSanitizer()

	cases := []struct {
		input    interface{}
		expected interface{}
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"yes", false},
		{"0", false},
	}

	for _, c := range cases {
		body := map[string]interface{}{"featured": c.input}
		s.SanitizeBody(body)
		assert.Equal(t, c.expected, body["featured"], "input %v", c.input)
	}
}

func TestSanitizeBodyArrayFields(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{"skills": `["go", "sql"]`}
	s.SanitizeBody(body)
	assert.Equal(t, []interface{}{"go", "sql"}, body["skills"])

	// JSON scalar strings wrap into a single-element array.
	body = map[string]interface{}{"skills": `"go"`}
	s.SanitizeBody(body)
	assert.Equal(t, []interface{}{"go"}, body["skills"])

	// Non-JSON strings fall back to comma splitting.
	body = map[string]interface{}{"skills": "go, sql"}
	s.SanitizeBody(body)
	assert.Equal(t, []string{"go", "sql"}, body["skills"])

	body = map[string]interface{}{"images": 5}
	s.SanitizeBody(body)
	assert.Equal(t, []string{}, body["images"])
}

func TestSanitizeBodyObjectFields(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{"contactInfo": `{"email": "a@b.org"}`}
	s.SanitizeBody(body)
	assert.Equal(t, map[string]interface{}{"email": "a@b.org"}, body["contactInfo"])

	// Location may legitimately stay a plain string.
	body = map[string]interface{}{"location": "Berlin"}
	s.SanitizeBody(body)
	assert.Equal(t, "Berlin", body["location"])

	// Other object fields keep an unparseable string value untouched too; the
	// failure is only logged.
	body = map[string]interface{}{"metadata": "not json"}
	s.SanitizeBody(body)
	assert.Equal(t, "not json", body["metadata"])
}

func TestSanitizeBodyStringFields(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{"title": "  Winter drive  "}
	s.SanitizeBody(body)
	assert.Equal(t, "Winter drive", body["title"])
}

func TestSanitizeBodyEmptyValueNormalization(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{
		"title":        "",
		"organization": "undefined",
		"category":     "null",
		"custom":       "",
		"kept":         "value",
	}
	s.SanitizeBody(body)

	assert.NotContains(t, body, "title")
	assert.NotContains(t, body, "organization")
	assert.NotContains(t, body, "category")
	// Empty-value normalization applies to unknown fields as well.
	assert.NotContains(t, body, "custom")
	assert.Equal(t, "value", body["kept"])
}

func TestSanitizeBodyMixedPayload(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{
		"tags":     "x, y",
		"goal":     "150.50",
		"featured": "true",
	}
	s.SanitizeBody(body)

	assert.Equal(t, []string{"x", "y"}, body["tags"])
	assert.Equal(t, 150.50, body["goal"])
	assert.Equal(t, true, body["featured"])
}

func TestSanitizeBodyIsIdempotent(t *testing.T) {
	s := newTestSanitizer()

	body := map[string]interface{}{
		"tags":     "x, y",
		"goal":     "150.50",
		"featured": "true",
		"deadline": "2026-03-15",
		"title":    " Drive ",
	}
	s.SanitizeBody(body)

	first := map[string]interface{}{}
	for k, v := range body {
		first[k] = v
	}

	s.SanitizeBody(body)
	assert.Equal(t, first, body)
}

func TestSanitizeBodyNeverPanics(t *testing.T) {
	s := newTestSanitizer()

	assert.NotPanics(t, func() {
		s.SanitizeBody(nil)
		s.SanitizeBody(map[string]interface{}{
			"tags":        nil,
			"goal":        []interface{}{"weird"},
			"deadline":    map[string]interface{}{"nested": true},
			"featured":    3.14,
			"location":    42,
			"unknownKey":  struct{}{},
			"contactInfo": nil,
		})
	})
}

func TestSanitizeQueryIntFields(t *testing.T) {
	s := newTestSanitizer()

	values := url.Values{"page": {"2"}, "limit": {"abc"}, "skip": {" 10 "}}
	s.SanitizeQuery(values)

	assert.Equal(t, "2", values.Get("page"))
	assert.False(t, values.Has("limit"))
	assert.Equal(t, "10", values.Get("skip"))
}

func TestSanitizeQueryBoolFields(t *testing.T) {
	s := newTestSanitizer()

	values := url.Values{"featured": {"1"}, "urgent": {"yes"}, "remote": {"TRUE"}}
	s.SanitizeQuery(values)

	assert.Equal(t, "true", values.Get("featured"))
	assert.Equal(t, "false", values.Get("urgent"))
	assert.Equal(t, "true", values.Get("remote"))
}

func TestSanitizeQueryLeavesUnknownParams(t *testing.T) {
	s := newTestSanitizer()

	values := url.Values{"search": {"blankets"}}
	s.SanitizeQuery(values)

	assert.Equal(t, "blankets", values.Get("search"))
}
