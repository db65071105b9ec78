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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/refugehub/privacy-data-service/internal/consent/service"
	"github.com/refugehub/privacy-data-service/internal/consent/store"
	"github.com/refugehub/privacy-data-service/internal/system/config"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	"github.com/refugehub/privacy-data-service/internal/system/utils"
)

const testJWTSecret = "consent-handler-test-secret"

type stubConsentProvider struct {
	service service.ConsentServiceInterface
}

func (p *stubConsentProvider) GetConsentService() service.ConsentServiceInterface {
	return p.service
}

type ConsentHandlerTestSuite struct {
	suite.Suite
	store   *store.InMemoryConsentStore
	handler *ConsentHandler
}

func TestConsentHandlerTestSuite(t *testing.T) {

	suite.Run(t, new(ConsentHandlerTestSuite))
}

func (s *ConsentHandlerTestSuite) SetupSuite() {

	config.OverridePDSRuntime(config.Config{
		Auth: config.AuthConfig{JWTSecret: testJWTSecret},
	})
}

func (s *ConsentHandlerTestSuite) SetupTest() {

	s.store = store.NewInMemoryConsentStore()
	s.handler = NewConsentHandlerWithProvider(&stubConsentProvider{
		service: service.NewConsentService(s.store),
	})
}

func (s *ConsentHandlerTestSuite) mintToken(userID string) string {

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	return signed
}

func (s *ConsentHandlerTestSuite) TestGetConsentUnauthorized() {

	req := httptest.NewRequest(http.MethodGet, "/api/v1/privacy/consent", nil)
	rec := httptest.NewRecorder()

	s.handler.HandleGetConsent(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	var response utils.APIResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.False(response.Success)
}

func (s *ConsentHandlerTestSuite) TestGetConsentDefaultsForNewUser() {

	req := httptest.NewRequest(http.MethodGet, "/api/v1/privacy/consent", nil)
	req.Header.Set("Authorization", "Bearer "+s.mintToken("user-1"))
	rec := httptest.NewRecorder()

	s.handler.HandleGetConsent(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var response utils.APIResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Success)

	data := response.Data.(map[string]interface{})
	consents := data["consents"].(map[string]interface{})
	essential := consents[constants.ConsentEssential].(map[string]interface{})
	s.Equal(true, essential["given"])
	analytics := consents[constants.ConsentAnalytics].(map[string]interface{})
	s.Equal(false, analytics["given"])
	s.Equal(constants.DefaultPrivacyPolicyVersion, data["privacyPolicyVersion"])
}

func (s *ConsentHandlerTestSuite) TestUpdateConsent() {

	body := bytes.NewBufferString(`{"analytics": true, "marketing": false}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/privacy/consent", body)
	req.Header.Set("Authorization", "Bearer "+s.mintToken("user-1"))
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()

	s.handler.HandleUpdateConsent(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var response utils.APIResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Success)

	record, err := s.store.GetConsentRecord("user-1")
	s.Require().NoError(err)
	s.Require().NotNil(record)
	s.True(record.Consents[constants.ConsentAnalytics].Given)
	s.False(record.Consents[constants.ConsentMarketing].Given)
	s.Len(record.WithdrawalHistory, 2)
	s.Equal("test-agent", record.UserAgent)
}

func (s *ConsentHandlerTestSuite) TestUpdateConsentRejectsEssential() {

	body := bytes.NewBufferString(`{"essential": false}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/privacy/consent", body)
	req.Header.Set("Authorization", "Bearer "+s.mintToken("user-1"))
	rec := httptest.NewRecorder()

	s.handler.HandleUpdateConsent(rec, req)

	// Unknown fields are ignored by the DTO, so an essential-only body is an
	// empty update.
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ConsentHandlerTestSuite) TestUpdateConsentMalformedBody() {

	body := bytes.NewBufferString(`{"analytics": `)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/privacy/consent", body)
	req.Header.Set("Authorization", "Bearer "+s.mintToken("user-1"))
	rec := httptest.NewRecorder()

	s.handler.HandleUpdateConsent(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	var response utils.APIResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.False(response.Success)
	s.NotEmpty(response.Error)
}
