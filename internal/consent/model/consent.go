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

// ConsentStatus is the current decision for a single consent type.
type ConsentStatus struct {
	Given     bool       `json:"given" bson:"given"`
	Timestamp *time.Time `json:"timestamp" bson:"timestamp"`
}

// ConsentEvent is one entry of the append-only grant/withdraw history.
// Past entries are never mutated or deleted.
type ConsentEvent struct {
	ConsentType string    `json:"consentType" bson:"consent_type"`
	Action      string    `json:"action" bson:"action"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	IPAddress   string    `json:"ipAddress,omitempty" bson:"ip_address,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty" bson:"user_agent,omitempty"`
}

// ConsentRecord tracks a user's consent decisions. One record exists per user;
// the user id is immutable after creation and the record is retained for audit
// even when the owning account is scheduled for deletion.
type ConsentRecord struct {
	UserID               string                   `json:"userId" bson:"user_id"`
	IPAddress            string                   `json:"ipAddress,omitempty" bson:"ip_address,omitempty"`
	UserAgent            string                   `json:"userAgent,omitempty" bson:"user_agent,omitempty"`
	Consents             map[string]ConsentStatus `json:"consents" bson:"consents"`
	PrivacyPolicyVersion string                   `json:"privacyPolicyVersion" bson:"privacy_policy_version"`
	ConsentMethod        string                   `json:"consentMethod" bson:"consent_method"`
	WithdrawalHistory    []ConsentEvent           `json:"withdrawalHistory" bson:"withdrawal_history"`
	CreatedAt            time.Time                `json:"createdAt" bson:"created_at"`
	LastUpdated          time.Time                `json:"lastUpdated" bson:"last_updated"`
}

// CaptureContext carries the request metadata recorded alongside a consent change.
type CaptureContext struct {
	IPAddress string
	UserAgent string
	Method    string
}

// UpdateConsentRequest is the request body for consent updates. Unspecified
// consent types are left untouched; essential is not settable.
type UpdateConsentRequest struct {
	Analytics      *bool  `json:"analytics,omitempty"`
	Marketing      *bool  `json:"marketing,omitempty"`
	DataProcessing *bool  `json:"dataProcessing,omitempty"`
	ThirdParty     *bool  `json:"thirdParty,omitempty"`
	ConsentMethod  string `json:"consentMethod,omitempty"`
}

// Updates converts the request into the consent-type to decision map the
// service operates on.
func (r *UpdateConsentRequest) Updates() map[string]bool {

	updates := map[string]bool{}
	if r.Analytics != nil {
		updates[constants.ConsentAnalytics] = *r.Analytics
	}
	if r.Marketing != nil {
		updates[constants.ConsentMarketing] = *r.Marketing
	}
	if r.DataProcessing != nil {
		updates[constants.ConsentDataProcessing] = *r.DataProcessing
	}
	if r.ThirdParty != nil {
		updates[constants.ConsentThirdParty] = *r.ThirdParty
	}
	return updates
}

// DefaultConsents returns the default consent shape for a user without a
// stored record: essential granted, everything else withheld.
func DefaultConsents() map[string]ConsentStatus {

	return map[string]ConsentStatus{
		constants.ConsentEssential:      {Given: true},
		constants.ConsentAnalytics:      {Given: false},
		constants.ConsentMarketing:      {Given: false},
		constants.ConsentDataProcessing: {Given: false},
		constants.ConsentThirdParty:     {Given: false},
	}
}

// DefaultConsentRecord returns the record shape reported for users that have
// no stored record yet. It is not persisted.
func DefaultConsentRecord(userID string) *ConsentRecord {

	return &ConsentRecord{
		UserID:               userID,
		Consents:             DefaultConsents(),
		PrivacyPolicyVersion: constants.DefaultPrivacyPolicyVersion,
		WithdrawalHistory:    []ConsentEvent{},
	}
}
