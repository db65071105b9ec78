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
	"sync"
	"time"

	"github.com/refugehub/privacy-data-service/internal/consent/model"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
)

// InMemoryConsentStore keeps consent records in process memory. Used by tests;
// a fresh instance is constructed per test run so no state leaks between runs.
type InMemoryConsentStore struct {
	mu      sync.RWMutex
	records map[string]*model.ConsentRecord
}

// NewInMemoryConsentStore creates an empty in-memory consent store.
func NewInMemoryConsentStore() *InMemoryConsentStore {

	return &InMemoryConsentStore{
		records: make(map[string]*model.ConsentRecord),
	}
}

// GetConsentRecord returns a copy of the stored record, or nil when absent.
func (s *InMemoryConsentStore) GetConsentRecord(userID string) (*model.ConsentRecord, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, found := s.records[userID]
	if !found {
		return nil, nil
	}
	copied := *record
	copied.Consents = make(map[string]model.ConsentStatus, len(record.Consents))
	for k, v := range record.Consents {
		copied.Consents[k] = v
	}
	copied.WithdrawalHistory = append([]model.ConsentEvent{}, record.WithdrawalHistory...)
	return &copied, nil
}

// ApplyConsentUpdate mirrors the document store semantics: history entries are
// appended before the flags are set, within a single locked section.
func (s *InMemoryConsentStore) ApplyConsentUpdate(userID string, events []model.ConsentEvent,
	statuses map[string]model.ConsentStatus, capture model.CaptureContext) (*model.ConsentRecord, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	record, found := s.records[userID]
	if !found {
		record = &model.ConsentRecord{
			UserID:               userID,
			Consents:             map[string]model.ConsentStatus{},
			PrivacyPolicyVersion: constants.DefaultPrivacyPolicyVersion,
			CreatedAt:            now,
		}
		record.Consents[constants.ConsentEssential] = model.ConsentStatus{Given: true, Timestamp: &now}
		s.records[userID] = record
	}

	record.WithdrawalHistory = append(record.WithdrawalHistory, events...)
	for consentType, status := range statuses {
		record.Consents[consentType] = status
	}
	record.IPAddress = capture.IPAddress
	record.UserAgent = capture.UserAgent
	record.ConsentMethod = capture.Method
	record.LastUpdated = now

	copied := *record
	copied.Consents = make(map[string]model.ConsentStatus, len(record.Consents))
	for k, v := range record.Consents {
		copied.Consents[k] = v
	}
	copied.WithdrawalHistory = append([]model.ConsentEvent{}, record.WithdrawalHistory...)
	return &copied, nil
}
