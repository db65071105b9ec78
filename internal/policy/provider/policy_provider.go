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

package provider

import (
	"github.com/refugehub/privacy-data-service/internal/policy/service"
)

// PolicyProviderInterface defines the interface for the policy provider.
type PolicyProviderInterface interface {
	GetPolicyService() service.PolicyServiceInterface
}

// PolicyProvider is the default implementation of the PolicyProviderInterface.
type PolicyProvider struct{}

// NewPolicyProvider creates a new instance of PolicyProvider.
func NewPolicyProvider() PolicyProviderInterface {
	return &PolicyProvider{}
}

// GetPolicyService returns the policy service instance.
func (pp *PolicyProvider) GetPolicyService() service.PolicyServiceInterface {
	return service.GetPolicyService()
}
