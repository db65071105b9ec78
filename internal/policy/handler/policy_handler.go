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
	"net/http"

	"github.com/refugehub/privacy-data-service/internal/policy/provider"
	"github.com/refugehub/privacy-data-service/internal/system/utils"
)

// PolicyHandler handles the privacy policy endpoint.
type PolicyHandler struct {
	provider provider.PolicyProviderInterface
}

// NewPolicyHandler creates a handler backed by the default policy provider.
func NewPolicyHandler() *PolicyHandler {

	return &PolicyHandler{provider: provider.NewPolicyProvider()}
}

// NewPolicyHandlerWithProvider creates a handler with the given provider.
func NewPolicyHandlerWithProvider(p provider.PolicyProviderInterface) *PolicyHandler {

	return &PolicyHandler{provider: p}
}

// HandleGetPolicy returns the published privacy policy document.
func (ph *PolicyHandler) HandleGetPolicy(w http.ResponseWriter, r *http.Request) {

	if _, err := utils.AuthenticateRequest(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	document, err := ph.provider.GetPolicyService().GetPolicy()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, document, "")
}
