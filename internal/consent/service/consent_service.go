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

package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/refugehub/privacy-data-service/internal/consent/model"
	"github.com/refugehub/privacy-data-service/internal/consent/store"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

// ConsentServiceInterface is the single point of truth for reading and
// mutating a user's consent state.
type ConsentServiceInterface interface {
	GetConsent(userID string) (*model.ConsentRecord, error)
	UpdateConsent(userID string, updates map[string]bool, capture model.CaptureContext) (map[string]model.ConsentStatus, error)
	RecordRegistrationConsent(userID string, updates map[string]bool, capture model.CaptureContext) error
}

// ConsentService is the default implementation.
type ConsentService struct {
	store store.ConsentStoreInterface
}

// GetConsentService returns a service bound to the document store.
func GetConsentService() ConsentServiceInterface {

	return &ConsentService{store: store.NewMongoConsentStore()}
}

// NewConsentService returns a service bound to the given store.
func NewConsentService(consentStore store.ConsentStoreInterface) ConsentServiceInterface {

	return &ConsentService{store: consentStore}
}

// GetConsent returns the user's consent record, or the default shape when no
// record has been stored yet. Callers must not assume a record exists in
// storage; the default is not persisted.
func (cs *ConsentService) GetConsent(userID string) (*model.ConsentRecord, error) {

	record, err := cs.store.GetConsentRecord(userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return model.DefaultConsentRecord(userID), nil
	}

	// Fill in consent types the stored document does not carry yet and pin
	// essential to granted.
	if record.Consents == nil {
		record.Consents = map[string]model.ConsentStatus{}
	}
	for consentType, status := range model.DefaultConsents() {
		if _, found := record.Consents[consentType]; !found {
			record.Consents[consentType] = status
		}
	}
	essential := record.Consents[constants.ConsentEssential]
	essential.Given = true
	record.Consents[constants.ConsentEssential] = essential

	if record.WithdrawalHistory == nil {
		record.WithdrawalHistory = []model.ConsentEvent{}
	}
	return record, nil
}

// UpdateConsent applies the requested consent decisions. For every consent
// type in the update map exactly one history entry is appended before the flag
// is set; both land in a single document write. The essential type is not
// settable through this operation.
func (cs *ConsentService) UpdateConsent(userID string, updates map[string]bool,
	capture model.CaptureContext) (map[string]model.ConsentStatus, error) {

	if err := validateUpdates(updates); err != nil {
		return nil, err
	}

	if capture.Method == "" {
		capture.Method = constants.ConsentMethodExplicitConsent
	}
	if !constants.AllowedConsentMethods[capture.Method] {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONSENT_VALIDATION.Code,
			Message:     errors2.CONSENT_VALIDATION.Message,
			Description: fmt.Sprintf("Invalid consent method: %s", capture.Method),
		}, http.StatusBadRequest)
	}

	now := time.Now().UTC()
	events := make([]model.ConsentEvent, 0, len(updates))
	statuses := make(map[string]model.ConsentStatus, len(updates))
	for consentType, given := range updates {
		action := constants.ConsentActionWithdrawn
		if given {
			action = constants.ConsentActionGranted
		}
		events = append(events, model.ConsentEvent{
			ConsentType: consentType,
			Action:      action,
			Timestamp:   now,
			IPAddress:   capture.IPAddress,
			UserAgent:   capture.UserAgent,
		})
		timestamp := now
		statuses[consentType] = model.ConsentStatus{Given: given, Timestamp: &timestamp}
	}

	record, err := cs.store.ApplyConsentUpdate(userID, events, statuses, capture)
	if err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      userID,
		TargetType:    log.TargetTypeConsentRecord,
		ActionID:      log.ActionUpdateConsent,
		Data:          updates,
	})

	consents := record.Consents
	if consents == nil {
		consents = map[string]model.ConsentStatus{}
	}
	for consentType, status := range model.DefaultConsents() {
		if _, found := consents[consentType]; !found {
			consents[consentType] = status
		}
	}
	return consents, nil
}

// RecordRegistrationConsent captures the consent decisions made during account
// registration.
func (cs *ConsentService) RecordRegistrationConsent(userID string, updates map[string]bool,
	capture model.CaptureContext) error {

	capture.Method = constants.ConsentMethodRegistration
	_, err := cs.UpdateConsent(userID, updates, capture)
	return err
}

// validateUpdates rejects empty maps, unknown consent types and any attempt to
// change the essential type.
func validateUpdates(updates map[string]bool) error {

	if len(updates) == 0 {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONSENT_BAD_REQUEST.Code,
			Message:     errors2.UPDATE_CONSENT_BAD_REQUEST.Message,
			Description: "At least one consent type must be provided.",
		}, http.StatusBadRequest)
	}

	for consentType := range updates {
		if consentType == constants.ConsentEssential {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.ESSENTIAL_CONSENT_IMMUTABLE.Code,
				Message:     errors2.ESSENTIAL_CONSENT_IMMUTABLE.Message,
				Description: errors2.ESSENTIAL_CONSENT_IMMUTABLE.Description,
			}, http.StatusBadRequest)
		}
		if !constants.AllowedConsentTypes[consentType] {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.CONSENT_VALIDATION.Code,
				Message:     errors2.CONSENT_VALIDATION.Message,
				Description: fmt.Sprintf("Unknown consent type: %s", consentType),
			}, http.StatusBadRequest)
		}
	}
	return nil
}
