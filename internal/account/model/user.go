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

import (
	"time"

	"github.com/refugehub/privacy-data-service/internal/system/constants"
)

// CommunicationPreferences are the per-channel opt-ins inside privacy settings.
type CommunicationPreferences struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
}

// PrivacySettings is the user-controlled privacy configuration stored on the
// account.
type PrivacySettings struct {
	ProfileVisibility        string                   `json:"profileVisibility"`
	DataRetention            string                   `json:"dataRetention"`
	CommunicationPreferences CommunicationPreferences `json:"communicationPreferences"`
}

// DefaultPrivacySettings returns the settings applied to accounts that have
// never customized them.
func DefaultPrivacySettings() PrivacySettings {

	return PrivacySettings{
		ProfileVisibility: constants.VisibilityCommunity,
		DataRetention:     constants.RetentionStandard,
		CommunicationPreferences: CommunicationPreferences{
			Email: true,
		},
	}
}

// User is the account-side view of a user: policy acceptance, deletion
// lifecycle and privacy settings. Identity fields live in the upstream
// identity provider; this service only tracks privacy state.
type User struct {
	ID                    string          `json:"id"`
	Email                 string          `json:"email,omitempty"`
	PolicyVersionAccepted string          `json:"policyVersionAccepted,omitempty"`
	PolicyAcceptedAt      *time.Time      `json:"policyAcceptedAt,omitempty"`
	DeletionScheduledAt   *time.Time      `json:"deletionScheduledAt,omitempty"`
	DeletionReason        string          `json:"deletionReason,omitempty"`
	PrivacySettings       PrivacySettings `json:"privacySettings"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// DataExportRequest records a user's request for a copy of their data.
type DataExportRequest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// AcceptPolicyRequest is the request body for privacy policy acceptance.
type AcceptPolicyRequest struct {
	Version string `json:"version,omitempty"`
}

// AccountDeletionRequest is the request body for scheduling account deletion.
type AccountDeletionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// PrivacySettingsRequest is the request body for privacy settings updates.
// Unset fields keep their current values.
type PrivacySettingsRequest struct {
	ProfileVisibility        *string                          `json:"profileVisibility,omitempty"`
	DataRetention            *string                          `json:"dataRetention,omitempty"`
	CommunicationPreferences *CommunicationPreferencesRequest `json:"communicationPreferences,omitempty"`
}

// CommunicationPreferencesRequest carries partial channel opt-in updates.
type CommunicationPreferencesRequest struct {
	Email *bool `json:"email,omitempty"`
	SMS   *bool `json:"sms,omitempty"`
	Push  *bool `json:"push,omitempty"`
}
