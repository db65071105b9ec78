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

package store

import (
	"github.com/refugehub/privacy-data-service/internal/consent/model"
)

// ConsentStoreInterface abstracts persistence of consent records so that
// services depend on an injected repository rather than storage globals.
type ConsentStoreInterface interface {
	// GetConsentRecord returns the stored record for the user, or nil when
	// none exists yet.
	GetConsentRecord(userID string) (*model.ConsentRecord, error)

	// ApplyConsentUpdate appends the given history events and sets the given
	// consent statuses in a single atomic write, creating the record when it
	// does not exist. The updated record is returned.
	ApplyConsentUpdate(userID string, events []model.ConsentEvent,
		statuses map[string]model.ConsentStatus, capture model.CaptureContext) (*model.ConsentRecord, error)
}
