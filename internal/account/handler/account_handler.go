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

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/refugehub/privacy-data-service/internal/account/model"
	"github.com/refugehub/privacy-data-service/internal/account/provider"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/utils"
)

// AccountHandler handles the account-side privacy endpoints.
type AccountHandler struct {
	provider provider.AccountProviderInterface
}

// NewAccountHandler creates a handler backed by the default account provider.
func NewAccountHandler() *AccountHandler {

	return &AccountHandler{provider: provider.NewAccountProvider()}
}

// NewAccountHandlerWithProvider creates a handler with the given provider.
func NewAccountHandlerWithProvider(p provider.AccountProviderInterface) *AccountHandler {

	return &AccountHandler{provider: p}
}

// HandleAcceptPolicy records the user's acceptance of the privacy policy.
func (ah *AccountHandler) HandleAcceptPolicy(w http.ResponseWriter, r *http.Request) {

	userID, err := utils.AuthenticateRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.AcceptPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ACCEPT_POLICY_BAD_REQUEST.Code,
			Message:     errors2.ACCEPT_POLICY_BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "policy acceptance"),
		}, http.StatusBadRequest))
		return
	}

	version, err := ah.provider.GetAccountService().AcceptPolicy(userID, request.Version)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"version":    version,
		"acceptedAt": time.Now().UTC(),
	}, "Privacy policy accepted")
}

// HandleRequestDataExport records a request for a copy of the user's data.
func (ah *AccountHandler) HandleRequestDataExport(w http.ResponseWriter, r *http.Request) {

	userID, err := utils.AuthenticateRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	request, err := ah.provider.GetAccountService().RequestDataExport(userID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusAccepted, map[string]interface{}{
		"requestId":   request.ID,
		"status":      request.Status,
		"requestedAt": request.RequestedAt,
	}, "Data export request received. You will be notified when your export is ready.")
}

// HandleRequestAccountDeletion schedules the account for deletion after the
// grace period.
func (ah *AccountHandler) HandleRequestAccountDeletion(w http.ResponseWriter, r *http.Request) {

	userID, err := utils.AuthenticateRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.AccountDeletionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ACCOUNT_DELETION_BAD_REQUEST.Code,
			Message:     errors2.ACCOUNT_DELETION_BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "account deletion"),
		}, http.StatusBadRequest))
		return
	}

	scheduledAt, err := ah.provider.GetAccountService().RequestAccountDeletion(userID, request.Reason)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"scheduledDeletionDate": scheduledAt,
	}, "Account deletion scheduled. You can cancel within the grace period.")
}

// HandleCancelAccountDeletion cancels a pending deletion schedule.
func (ah *AccountHandler) HandleCancelAccountDeletion(w http.ResponseWriter, r *http.Request) {

	userID, err := utils.AuthenticateRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	if err := ah.provider.GetAccountService().CancelAccountDeletion(userID); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, nil, "Account deletion cancelled")
}

// HandleUpdatePrivacySettings applies partial privacy settings changes.
func (ah *AccountHandler) HandleUpdatePrivacySettings(w http.ResponseWriter, r *http.Request) {

	userID, err := utils.AuthenticateRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.PrivacySettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PRIVACY_SETTINGS_VALIDATION.Code,
			Message:     errors2.PRIVACY_SETTINGS_VALIDATION.Message,
			Description: utils.HandleDecodeError(err, "privacy settings"),
		}, http.StatusBadRequest))
		return
	}

	settings, err := ah.provider.GetAccountService().UpdatePrivacySettings(userID, request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"privacySettings": settings,
	}, "Privacy settings updated")
}

// HandleGetAccount returns the account-side privacy state for the user.
func (ah *AccountHandler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {

	userID, err := utils.AuthenticateRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	user, err := ah.provider.GetAccountService().GetAccount(userID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, user, "")
}
