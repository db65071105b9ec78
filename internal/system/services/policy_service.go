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

package services

import (
	"fmt"
	"net/http"

	"github.com/refugehub/privacy-data-service/internal/policy/handler"
)

type PolicyService struct {
	handler *handler.PolicyHandler
}

func NewPolicyService(mux *http.ServeMux, apiBasePath string) *PolicyService {
	instance := &PolicyService{
		handler: handler.NewPolicyHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *PolicyService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s/privacy/policy", apiBasePath), s.handler.HandleGetPolicy)
}
