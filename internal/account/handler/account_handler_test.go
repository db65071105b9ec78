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

	"github.com/refugehub/privacy-data-service/internal/account/model"
	"github.com/refugehub/privacy-data-service/internal/account/service"
	"github.com/refugehub/privacy-data-service/internal/account/store"
	"github.com/refugehub/privacy-data-service/internal/system/config"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	"github.com/refugehub/privacy-data-service/internal/system/utils"
)

const testJWTSecret = "account-handler-test-secret"

type stubAccountProvider struct {
	service service.AccountServiceInterface
}

func (p *stubAccountProvider) GetAccountService() service.AccountServiceInterface {
	return p.service
}

type AccountHandlerTestSuite struct {
	suite.Suite
	store   *store.InMemoryUserStore
	handler *AccountHandler
}

func TestAccountHandlerTestSuite(t *testing.T) {

	suite.Run(t, new(AccountHandlerTestSuite))
}

func (s *AccountHandlerTestSuite) SetupSuite() {

	config.OverridePDSRuntime(config.Config{
		Auth: config.AuthConfig{JWTSecret: testJWTSecret},
	})
}

func (s *AccountHandlerTestSuite) SetupTest() {

	s.store = store.NewInMemoryUserStore()
	s.store.AddUser(model.User{
		ID:              "user-1",
		PrivacySettings: model.DefaultPrivacySettings(),
	})
	s.handler = NewAccountHandlerWithProvider(&stubAccountProvider{
		service: service.NewAccountService(s.store),
	})
}

func (s *AccountHandlerTestSuite) authedRequest(method, target string, body *bytes.Buffer) *http.Request {

	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+signed)
	return req
}

func (s *AccountHandlerTestSuite) TestAcceptPolicyEmptyBodyUsesDefaultVersion() {

	req := s.authedRequest(http.MethodPost, "/api/v1/privacy/accept-policy", bytes.NewBufferString(""))
	rec := httptest.NewRecorder()

	s.handler.HandleAcceptPolicy(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var response utils.APIResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Success)

	data := response.Data.(map[string]interface{})
	s.Equal(constants.DefaultPrivacyPolicyVersion, data["version"])

	user, err := s.store.GetUser("user-1")
	s.Require().NoError(err)
	s.Equal(constants.DefaultPrivacyPolicyVersion, user.PolicyVersionAccepted)
}

func (s *AccountHandlerTestSuite) TestRequestDataExportReturnsAccepted() {

	req := s.authedRequest(http.MethodPost, "/api/v1/privacy/data-export", nil)
	rec := httptest.NewRecorder()

	s.handler.HandleRequestDataExport(rec, req)

	s.Equal(http.StatusAccepted, rec.Code)
	var response utils.APIResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Success)

	data := response.Data.(map[string]interface{})
	s.NotEmpty(data["requestId"])
	s.Equal(constants.ExportStatusPending, data["status"])
}

func (s *AccountHandlerTestSuite) TestAccountDeletionRoundTrip() {

	req := s.authedRequest(http.MethodPost, "/api/v1/privacy/account-deletion",
		bytes.NewBufferString(`{"reason": "no longer needed"}`))
	rec := httptest.NewRecorder()

	s.handler.HandleRequestAccountDeletion(rec, req)
	s.Equal(http.StatusOK, rec.Code)

	user, err := s.store.GetUser("user-1")
	s.Require().NoError(err)
	s.Require().NotNil(user.DeletionScheduledAt)
	s.Equal("no longer needed", user.DeletionReason)

	cancelReq := s.authedRequest(http.MethodDelete, "/api/v1/privacy/account-deletion", nil)
	cancelRec := httptest.NewRecorder()

	s.handler.HandleCancelAccountDeletion(cancelRec, cancelReq)
	s.Equal(http.StatusOK, cancelRec.Code)

	user, err = s.store.GetUser("user-1")
	s.Require().NoError(err)
	s.Nil(user.DeletionScheduledAt)
}

func (s *AccountHandlerTestSuite) TestUpdatePrivacySettings() {

	req := s.authedRequest(http.MethodPut, "/api/v1/privacy/settings",
		bytes.NewBufferString(`{"profileVisibility": "private"}`))
	rec := httptest.NewRecorder()

	s.handler.HandleUpdatePrivacySettings(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	user, err := s.store.GetUser("user-1")
	s.Require().NoError(err)
	s.Equal(constants.VisibilityPrivate, user.PrivacySettings.ProfileVisibility)
	s.Equal(constants.RetentionStandard, user.PrivacySettings.DataRetention)
}

func (s *AccountHandlerTestSuite) TestUpdatePrivacySettingsRejectsBadEnum() {

	req := s.authedRequest(http.MethodPut, "/api/v1/privacy/settings",
		bytes.NewBufferString(`{"dataRetention": "forever"}`))
	rec := httptest.NewRecorder()

	s.handler.HandleUpdatePrivacySettings(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	var response utils.APIResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.False(response.Success)
}

func (s *AccountHandlerTestSuite) TestUnauthorizedWithoutToken() {

	req := httptest.NewRequest(http.MethodPost, "/api/v1/privacy/data-export", nil)
	rec := httptest.NewRecorder()

	s.handler.HandleRequestDataExport(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}
