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
	"time"

	"github.com/refugehub/privacy-data-service/internal/account/model"
)

// UserStoreInterface abstracts persistence of user accounts.
type UserStoreInterface interface {
	// GetUser returns the stored account, or nil when no account exists.
	GetUser(userID string) (*model.User, error)

	// UpdatePolicyAcceptance records the accepted policy version and timestamp.
	UpdatePolicyAcceptance(userID, version string, acceptedAt time.Time) error

	// ScheduleDeletion sets the deletion timestamp and reason on the account.
	ScheduleDeletion(userID string, scheduledAt time.Time, reason string) error

	// CancelDeletion clears any pending deletion schedule.
	CancelDeletion(userID string) error

	// UpdatePrivacySettings replaces the account's privacy settings.
	UpdatePrivacySettings(userID string, settings model.PrivacySettings) error

	// InsertDataExportRequest records a new data export request.
	InsertDataExportRequest(request model.DataExportRequest) error

	// ListUsersDueForDeletion returns the accounts whose deletion schedule has
	// passed the given cutoff.
	ListUsersDueForDeletion(cutoff time.Time) ([]model.User, error)

	// DeleteUser removes the account row permanently.
	DeleteUser(userID string) error
}
