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

	"github.com/google/uuid"

	"github.com/refugehub/privacy-data-service/internal/account/model"
	"github.com/refugehub/privacy-data-service/internal/account/store"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

// AccountServiceInterface exposes the account-side privacy operations: policy
// acceptance, data export, deletion lifecycle and privacy settings.
type AccountServiceInterface interface {
	GetAccount(userID string) (*model.User, error)
	AcceptPolicy(userID, version string) (string, error)
	RequestDataExport(userID string) (*model.DataExportRequest, error)
	RequestAccountDeletion(userID, reason string) (time.Time, error)
	CancelAccountDeletion(userID string) error
	UpdatePrivacySettings(userID string, request model.PrivacySettingsRequest) (*model.PrivacySettings, error)
	PurgeExpiredAccounts() (int, error)
}

// AccountService is the default implementation.
type AccountService struct {
	store store.UserStoreInterface
}

// GetAccountService returns a service bound to the relational store.
func GetAccountService() AccountServiceInterface {

	return &AccountService{store: store.NewPostgresUserStore()}
}

// NewAccountService returns a service bound to the given store.
func NewAccountService(userStore store.UserStoreInterface) AccountServiceInterface {

	return &AccountService{store: userStore}
}

// GetAccount returns the stored account for the user.
func (as *AccountService) GetAccount(userID string) (*model.User, error) {

	user, err := as.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors2.NewClientError(errors2.USER_NOT_FOUND, http.StatusNotFound)
	}
	return user, nil
}

// AcceptPolicy records acceptance of the given privacy policy version. An
// empty version means the current default.
func (as *AccountService) AcceptPolicy(userID, version string) (string, error) {

	if version == "" {
		version = constants.DefaultPrivacyPolicyVersion
	}

	if err := as.store.UpdatePolicyAcceptance(userID, version, time.Now().UTC()); err != nil {
		return "", err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      userID,
		TargetType:    log.TargetTypeUserAccount,
		ActionID:      log.ActionAcceptPolicy,
		Data:          map[string]string{"version": version},
	})
	return version, nil
}

// RequestDataExport records a data export request for the user's data. The
// export itself is fulfilled asynchronously by a support workflow.
func (as *AccountService) RequestDataExport(userID string) (*model.DataExportRequest, error) {

	user, err := as.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors2.NewClientError(errors2.USER_NOT_FOUND, http.StatusNotFound)
	}

	request := model.DataExportRequest{
		ID:          uuid.New().String(),
		UserID:      userID,
		Status:      constants.ExportStatusPending,
		RequestedAt: time.Now().UTC(),
	}
	if err := as.store.InsertDataExportRequest(request); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      request.ID,
		TargetType:    log.TargetTypeUserAccount,
		ActionID:      log.ActionRequestDataExport,
	})
	return &request, nil
}

// RequestAccountDeletion schedules the account for deletion after the grace
// period. Requesting again while a schedule is pending moves the date.
func (as *AccountService) RequestAccountDeletion(userID, reason string) (time.Time, error) {

	scheduledAt := time.Now().UTC().AddDate(0, 0, constants.DeletionGracePeriodDays)
	if err := as.store.ScheduleDeletion(userID, scheduledAt, reason); err != nil {
		return time.Time{}, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      userID,
		TargetType:    log.TargetTypeUserAccount,
		ActionID:      log.ActionScheduleAccountDeletion,
		Data:          map[string]string{"scheduledAt": scheduledAt.Format(time.RFC3339)},
	})
	return scheduledAt, nil
}

// CancelAccountDeletion clears a pending deletion schedule. Cancelling when no
// schedule exists is a no-op, not an error.
func (as *AccountService) CancelAccountDeletion(userID string) error {

	if err := as.store.CancelDeletion(userID); err != nil {
		return err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      userID,
		TargetType:    log.TargetTypeUserAccount,
		ActionID:      log.ActionCancelAccountDeletion,
	})
	return nil
}

// UpdatePrivacySettings merges the requested changes over the account's
// current settings and persists the result.
func (as *AccountService) UpdatePrivacySettings(userID string,
	request model.PrivacySettingsRequest) (*model.PrivacySettings, error) {

	if err := validateSettingsRequest(request); err != nil {
		return nil, err
	}

	user, err := as.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors2.NewClientError(errors2.USER_NOT_FOUND, http.StatusNotFound)
	}

	settings := user.PrivacySettings
	if request.ProfileVisibility != nil {
		settings.ProfileVisibility = *request.ProfileVisibility
	}
	if request.DataRetention != nil {
		settings.DataRetention = *request.DataRetention
	}
	if request.CommunicationPreferences != nil {
		if request.CommunicationPreferences.Email != nil {
			settings.CommunicationPreferences.Email = *request.CommunicationPreferences.Email
		}
		if request.CommunicationPreferences.SMS != nil {
			settings.CommunicationPreferences.SMS = *request.CommunicationPreferences.SMS
		}
		if request.CommunicationPreferences.Push != nil {
			settings.CommunicationPreferences.Push = *request.CommunicationPreferences.Push
		}
	}

	if err := as.store.UpdatePrivacySettings(userID, settings); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      userID,
		TargetType:    log.TargetTypeUserAccount,
		ActionID:      log.ActionUpdatePrivacySettings,
	})
	return &settings, nil
}

// PurgeExpiredAccounts permanently deletes accounts whose deletion schedule
// has elapsed. Consent records are retained for audit. Returns the number of
// purged accounts.
func (as *AccountService) PurgeExpiredAccounts() (int, error) {

	logger := log.GetLogger()
	due, err := as.store.ListUsersDueForDeletion(time.Now().UTC())
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, user := range due {
		if err := as.store.DeleteUser(user.ID); err != nil {
			logger.Error(fmt.Sprintf("Failed to purge account: %s", user.ID), log.Error(err))
			continue
		}
		purged++
		logger.Audit(log.AuditEvent{
			InitiatorID:   "deletion-reaper",
			InitiatorType: log.InitiatorTypeSystem,
			TargetID:      user.ID,
			TargetType:    log.TargetTypeUserAccount,
			ActionID:      log.ActionPurgeAccount,
		})
	}
	return purged, nil
}

// validateSettingsRequest checks enum fields against the allowed values.
func validateSettingsRequest(request model.PrivacySettingsRequest) error {

	if request.ProfileVisibility != nil && !constants.AllowedProfileVisibilities[*request.ProfileVisibility] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PRIVACY_SETTINGS_VALIDATION.Code,
			Message:     errors2.PRIVACY_SETTINGS_VALIDATION.Message,
			Description: fmt.Sprintf("Invalid profile visibility: %s", *request.ProfileVisibility),
		}, http.StatusBadRequest)
	}
	if request.DataRetention != nil && !constants.AllowedDataRetentionModes[*request.DataRetention] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PRIVACY_SETTINGS_VALIDATION.Code,
			Message:     errors2.PRIVACY_SETTINGS_VALIDATION.Message,
			Description: fmt.Sprintf("Invalid data retention mode: %s", *request.DataRetention),
		}, http.StatusBadRequest)
	}
	return nil
}
