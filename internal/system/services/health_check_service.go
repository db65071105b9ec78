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
	"net/http"

	"github.com/refugehub/privacy-data-service/internal/health_check/handler"
)

// HealthService handles routing for health and readiness endpoints. These
// live outside the API base path.
type HealthService struct {
	handler *handler.HealthHandler
}

// NewHealthService creates a new HealthService instance.
func NewHealthService(mux *http.ServeMux) *HealthService {
	instance := &HealthService{
		handler: handler.NewHealthHandler(),
	}
	instance.RegisterRoutes(mux)
	return instance
}

// RegisterRoutes registers the health and readiness endpoints.
func (s *HealthService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handler.HandleHealth)
	mux.HandleFunc("GET /ready", s.handler.HandleReadiness)
}
