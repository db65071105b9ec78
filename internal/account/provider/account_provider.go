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
	"github.com/refugehub/privacy-data-service/internal/account/service"
)

// AccountProviderInterface defines the interface for the account provider.
type AccountProviderInterface interface {
	GetAccountService() service.AccountServiceInterface
}

// AccountProvider is the default implementation of the AccountProviderInterface.
type AccountProvider struct{}

// NewAccountProvider creates a new instance of AccountProvider.
func NewAccountProvider() AccountProviderInterface {
	return &AccountProvider{}
}

// GetAccountService returns the account service instance.
func (ap *AccountProvider) GetAccountService() service.AccountServiceInterface {
	return service.GetAccountService()
}
