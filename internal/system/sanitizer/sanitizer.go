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
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/refugehub/privacy-data-service/internal/system/log"
)

// Sanitizer normalizes heterogeneous client-submitted request payloads into the
// types route handlers and the persistence layer expect. Coercion never fails a
// request: malformed values degrade to an absent field or a default and are
// reported by downstream validation instead.
type Sanitizer struct {
	tagFields       map[string]bool
	numericFields   map[string]bool
	requiredNumeric map[string]bool
	dateFields      map[string]bool
	booleanFields   map[string]bool
	arrayFields     map[string]bool
	objectFields    map[string]bool
	objectStringOK  map[string]bool
	stringFields    map[string]bool
	queryIntFields  map[string]bool
	queryBoolFields map[string]bool
}

// New creates a Sanitizer from the given rule table.
func New(rules *Rules) *Sanitizer {
	return &Sanitizer{
		tagFields:       toSet(rules.TagFields),
		numericFields:   toSet(rules.NumericFields),
		requiredNumeric: toSet(rules.RequiredNumericFields),
		dateFields:      toSet(rules.DateFields),
		booleanFields:   toSet(rules.BooleanFields),
		arrayFields:     toSet(rules.ArrayFields),
		objectFields:    toSet(rules.ObjectFields),
		objectStringOK:  toSet(rules.ObjectStringAllowed),
		stringFields:    toSet(rules.StringFields),
		queryIntFields:  toSet(rules.QueryIntFields),
		queryBoolFields: toSet(rules.QueryBoolFields),
	}
}

// dateFormats accepted for date field coercion.
var dateFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// SanitizeBody applies the coercion table to a decoded JSON body, mutating it
// in place. Keys absent from the table pass through unchanged. Sanitizing an
// already-sanitized payload is a no-op.
func (s *Sanitizer) SanitizeBody(body map[string]interface{}) {

	if body == nil {
		return
	}

	for key, value := range body {
		switch {
		case s.tagFields[key]:
			body[key] = coerceTagList(value)

		case s.numericFields[key]:
			number, ok := coerceNumber(value)
			if ok {
				body[key] = number
			} else if s.requiredNumeric[key] {
				// Required monetary fields must not silently default to zero:
				// removing the key lets required-field validation fire.
				delete(body, key)
			} else {
				body[key] = float64(0)
			}

		case s.dateFields[key]:
			parsed, ok := coerceDate(value)
			if ok {
				body[key] = parsed
			} else {
				delete(body, key)
			}

		case s.booleanFields[key]:
			body[key] = coerceBoolean(value)

		case s.arrayFields[key]:
			body[key] = coerceArray(value)

		case s.objectFields[key]:
			obj, ok := coerceObject(value)
			if ok {
				body[key] = obj
			} else if str, isStr := value.(string); isStr && !s.objectStringOK[key] {
				logger := log.GetLogger()
				if logger != nil {
					logger.Warn(fmt.Sprintf("Field '%s' could not be parsed as an object", key),
						log.String("value", str))
				}
			}

		case s.stringFields[key]:
			if str, ok := value.(string); ok {
				body[key] = strings.TrimSpace(str)
			}
		}
	}

	// Final pass: uniform empty-value normalization across all fields, so
	// downstream required checks treat "missing" the same regardless of how
	// the client encoded it.
	for key, value := range body {
		if str, ok := value.(string); ok {
			if str == "" || str == "undefined" || str == "null" {
				delete(body, key)
			}
		}
	}
}

// SanitizeQuery applies the narrower query parameter rule set in place:
// pagination fields are kept only when they parse as integers, and filter
// flags are coerced to canonical booleans.
func (s *Sanitizer) SanitizeQuery(values url.Values) {

	for key := range values {
		raw := values.Get(key)
		switch {
		case s.queryIntFields[key]:
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				values.Set(key, strconv.Itoa(n))
			} else {
				values.Del(key)
			}

		case s.queryBoolFields[key]:
			if isTrueLiteral(raw) {
				values.Set(key, "true")
			} else {
				values.Set(key, "false")
			}
		}
	}
}

// coerceTagList splits a comma-separated string into trimmed, non-empty parts.
// Sequences pass through unchanged; anything else becomes an empty sequence.
func coerceTagList(value interface{}) interface{} {

	switch v := value.(type) {
	case string:
		return splitTrimFilter(v)
	case []interface{}:
		return v
	case []string:
		return v
	default:
		return []string{}
	}
}

// coerceNumber parses the value as a float64. The second return reports
// whether a usable number was produced.
func coerceNumber(value interface{}) (float64, bool) {

	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// coerceDate parses the value as a calendar timestamp.
func coerceDate(value interface{}) (time.Time, bool) {

	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		for _, format := range dateFormats {
			if parsed, err := time.Parse(format, strings.TrimSpace(v)); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// coerceBoolean maps the literals "true" and "1" to true and everything else
// to false. Existing booleans pass through; this is a lossy one-way coercion.
func coerceBoolean(value interface{}) interface{} {

	switch v := value.(type) {
	case bool:
		return v
	case string:
		return isTrueLiteral(v)
	default:
		return value
	}
}

// coerceArray normalizes free-form array fields. Strings are tried as JSON
// first; a JSON scalar is wrapped in a single-element sequence; unparseable
// strings fall back to comma splitting.
func coerceArray(value interface{}) interface{} {

	switch v := value.(type) {
	case []interface{}:
		return v
	case []string:
		return v
	case string:
		var parsed interface{}
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			if arr, ok := parsed.([]interface{}); ok {
				return arr
			}
			return []interface{}{parsed}
		}
		return splitTrimFilter(v)
	default:
		return []string{}
	}
}

// coerceObject parses serialized nested objects. A value that is already a map
// passes through; an unparseable string is left untouched since some object
// fields are legitimately plain strings.
func coerceObject(value interface{}) (interface{}, bool) {

	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case string:
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			return parsed, true
		}
		return nil, false
	default:
		return value, true
	}
}

func splitTrimFilter(value string) []string {

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isTrueLiteral(value string) bool {

	trimmed := strings.TrimSpace(value)
	return strings.EqualFold(trimmed, "true") || trimmed == "1"
}
