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

// Rules declares, per field name, which coercion category applies to an inbound
// request field. Every field belongs to exactly one category, so the order in
// which categories are processed does not affect the result. The rules are
// static configuration built once at process start and read-only afterwards.
type Rules struct {
	// TagFields hold comma-separable tag lists (e.g. "housing, legal-aid").
	TagFields []string

	// NumericFields are parsed as float64. Fields also present in
	// RequiredNumericFields are removed on parse failure so that downstream
	// required-field validation fires; the rest default to zero.
	NumericFields         []string
	RequiredNumericFields []string

	// DateFields are parsed as calendar timestamps and removed on failure.
	DateFields []string

	// BooleanFields accept the literals "true" (case-insensitive) and "1".
	BooleanFields []string

	// ArrayFields hold free-form sequences submitted either as JSON or as
	// comma-separated text.
	ArrayFields []string

	// ObjectFields hold nested JSON objects that clients sometimes submit as
	// serialized strings. Fields listed in ObjectStringAllowed are legitimately
	// plain strings, so a failed parse for them is not logged.
	ObjectFields        []string
	ObjectStringAllowed []string

	// StringFields are trimmed of surrounding whitespace.
	StringFields []string

	// Query parameter rules: integer pagination fields and boolean filter flags.
	QueryIntFields  []string
	QueryBoolFields []string
}

// DefaultRules returns the coercion table for the platform's request payloads.
func DefaultRules() *Rules {
	return &Rules{
		TagFields: []string{"tags", "categories", "languages"},

		NumericFields: []string{
			"goal", "price", "amount", "raised", "quantity", "capacity", "duration",
		},
		RequiredNumericFields: []string{"goal", "price", "amount"},

		DateFields: []string{
			"deadline", "startDate", "endDate", "eventDate", "publishedAt",
		},

		BooleanFields: []string{
			"featured", "urgent", "anonymous", "isActive", "remote", "published",
		},

		ArrayFields: []string{"images", "skills", "attachments", "requirements"},

		ObjectFields:        []string{"location", "contactInfo", "socialLinks", "metadata", "impactMetrics"},
		ObjectStringAllowed: []string{"location"},

		StringFields: []string{"title", "name", "description", "category", "organization"},

		QueryIntFields:  []string{"page", "limit", "skip", "offset"},
		QueryBoolFields: []string{"featured", "urgent", "isActive", "remote"},
	}
}

// toSet converts a field list into a lookup map.
func toSet(fields []string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
