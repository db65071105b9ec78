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
	"net/http"
	"sync"
	"time"

	"github.com/refugehub/privacy-data-service/internal/account/model"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
)

// InMemoryUserStore keeps user accounts in process memory. Used by tests.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   map[string]*model.User
	exports []model.DataExportRequest
}

// NewInMemoryUserStore creates an empty in-memory user store.
func NewInMemoryUserStore() *InMemoryUserStore {

	return &InMemoryUserStore{users: make(map[string]*model.User)}
}

// AddUser seeds an account. Test helper.
func (s *InMemoryUserStore) AddUser(user model.User) {

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := user
	s.users[user.ID] = &copied
}

// ExportRequests returns the recorded export requests. Test helper.
func (s *InMemoryUserStore) ExportRequests() []model.DataExportRequest {

	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.DataExportRequest{}, s.exports...)
}

// GetUser returns a copy of the stored account, or nil when absent.
func (s *InMemoryUserStore) GetUser(userID string) (*model.User, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, found := s.users[userID]
	if !found {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// UpdatePolicyAcceptance records the accepted policy version and timestamp.
func (s *InMemoryUserStore) UpdatePolicyAcceptance(userID, version string, acceptedAt time.Time) error {

	return s.mutate(userID, func(user *model.User) {
		user.PolicyVersionAccepted = version
		t := acceptedAt
		user.PolicyAcceptedAt = &t
		user.UpdatedAt = acceptedAt
	})
}

// ScheduleDeletion sets the deletion timestamp and reason on the account.
func (s *InMemoryUserStore) ScheduleDeletion(userID string, scheduledAt time.Time, reason string) error {

	return s.mutate(userID, func(user *model.User) {
		t := scheduledAt
		user.DeletionScheduledAt = &t
		user.DeletionReason = reason
		user.UpdatedAt = time.Now().UTC()
	})
}

// CancelDeletion clears any pending deletion schedule.
func (s *InMemoryUserStore) CancelDeletion(userID string) error {

	return s.mutate(userID, func(user *model.User) {
		user.DeletionScheduledAt = nil
		user.DeletionReason = ""
		user.UpdatedAt = time.Now().UTC()
	})
}

// UpdatePrivacySettings replaces the account's privacy settings.
func (s *InMemoryUserStore) UpdatePrivacySettings(userID string, settings model.PrivacySettings) error {

	return s.mutate(userID, func(user *model.User) {
		user.PrivacySettings = settings
		user.UpdatedAt = time.Now().UTC()
	})
}

// InsertDataExportRequest records a new data export request.
func (s *InMemoryUserStore) InsertDataExportRequest(request model.DataExportRequest) error {

	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports = append(s.exports, request)
	return nil
}

// ListUsersDueForDeletion returns accounts whose schedule passed the cutoff.
func (s *InMemoryUserStore) ListUsersDueForDeletion(cutoff time.Time) ([]model.User, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []model.User
	for _, user := range s.users {
		if user.DeletionScheduledAt != nil && !user.DeletionScheduledAt.After(cutoff) {
			due = append(due, *user)
		}
	}
	return due, nil
}

// DeleteUser removes the account permanently.
func (s *InMemoryUserStore) DeleteUser(userID string) error {

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}

func (s *InMemoryUserStore) mutate(userID string, apply func(*model.User)) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, found := s.users[userID]
	if !found {
		return errors2.NewClientError(errors2.USER_NOT_FOUND, http.StatusNotFound)
	}
	apply(user)
	return nil
}
