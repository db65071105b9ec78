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

package model

// PolicySection is one titled section of the privacy policy document.
type PolicySection struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// PolicyDocument is the published privacy policy served to clients.
type PolicyDocument struct {
	Version       string          `json:"version" yaml:"version"`
	LastUpdated   string          `json:"lastUpdated" yaml:"last_updated"`
	EffectiveDate string          `json:"effectiveDate" yaml:"effective_date"`
	Sections      []PolicySection `json:"sections" yaml:"sections"`
}
