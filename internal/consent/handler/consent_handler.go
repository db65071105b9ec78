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
	"net/http"

	"github.com/refugehub/privacy-data-service/internal/consent/model"
	"github.com/refugehub/privacy-data-service/internal/consent/provider"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/utils"
)

// ConsentHandler handles the consent HTTP endpoints.
type ConsentHandler struct {
	provider provider.ConsentProviderInterface
}

// NewConsentHandler creates a handler backed by the default consent provider.
func NewConsentHandler() *ConsentHandler {

	return &ConsentHandler{provider: provider.NewConsentProvider()}
}

// NewConsentHandlerWithProvider creates a handler with the given provider.
func NewConsentHandlerWithProvider(p provider.ConsentProviderInterface) *ConsentHandler {

	return &ConsentHandler{provider: p}
}

// HandleGetConsent returns the authenticated user's consent state. Users
// without a stored record get the default shape with essential granted.
func (ch *ConsentHandler) HandleGetConsent(w http.ResponseWriter, r *http.Request) {

	userID, err := utils.AuthenticateRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	record, err := ch.provider.GetConsentService().GetConsent(userID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"consents":             record.Consents,
		"privacyPolicyVersion": record.PrivacyPolicyVersion,
		"lastUpdated":          record.LastUpdated,
	}, "")
}

// HandleUpdateConsent applies the consent decisions in the request body.
func (ch *ConsentHandler) HandleUpdateConsent(w http.ResponseWriter, r *http.Request) {

	userID, err := utils.AuthenticateRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.UpdateConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONSENT_BAD_REQUEST.Code,
			Message:     errors2.UPDATE_CONSENT_BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "consent update"),
		}, http.StatusBadRequest))
		return
	}

	capture := model.CaptureContext{
		IPAddress: utils.ClientIP(r),
		UserAgent: r.UserAgent(),
		Method:    request.ConsentMethod,
	}

	consents, err := ch.provider.GetConsentService().UpdateConsent(userID, request.Updates(), capture)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"consents": consents,
	}, "Consent preferences updated successfully")
}
