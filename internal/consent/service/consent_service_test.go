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
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/refugehub/privacy-data-service/internal/consent/model"
	"github.com/refugehub/privacy-data-service/internal/consent/store"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
)

type ConsentServiceTestSuite struct {
	suite.Suite
	store   *store.InMemoryConsentStore
	service ConsentServiceInterface
}

func TestConsentServiceTestSuite(t *testing.T) {

	suite.Run(t, new(ConsentServiceTestSuite))
}

func (s *ConsentServiceTestSuite) SetupTest() {

	s.store = store.NewInMemoryConsentStore()
	s.service = NewConsentService(s.store)
}

func (s *ConsentServiceTestSuite) TestGetConsentDefaultsWhenNoRecord() {

	record, err := s.service.GetConsent("user-1")
	s.Require().NoError(err)
	s.Require().NotNil(record)

	s.True(record.Consents[constants.ConsentEssential].Given)
	s.False(record.Consents[constants.ConsentAnalytics].Given)
	s.False(record.Consents[constants.ConsentMarketing].Given)
	s.False(record.Consents[constants.ConsentDataProcessing].Given)
	s.False(record.Consents[constants.ConsentThirdParty].Given)
	s.Equal(constants.DefaultPrivacyPolicyVersion, record.PrivacyPolicyVersion)
	s.Empty(record.WithdrawalHistory)

	// The default shape is reported, never persisted.
	stored, err := s.store.GetConsentRecord("user-1")
	s.Require().NoError(err)
	s.Nil(stored)
}

func (s *ConsentServiceTestSuite) TestUpdateConsentGrantsAndRecordsHistory() {

	consents, err := s.service.UpdateConsent("user-1",
		map[string]bool{constants.ConsentAnalytics: true, constants.ConsentMarketing: true},
		model.CaptureContext{IPAddress: "203.0.113.7", UserAgent: "test-agent"})
	s.Require().NoError(err)

	s.True(consents[constants.ConsentAnalytics].Given)
	s.True(consents[constants.ConsentMarketing].Given)
	s.NotNil(consents[constants.ConsentAnalytics].Timestamp)
	s.True(consents[constants.ConsentEssential].Given)

	record, err := s.store.GetConsentRecord("user-1")
	s.Require().NoError(err)
	s.Require().NotNil(record)
	s.Len(record.WithdrawalHistory, 2)
	for _, event := range record.WithdrawalHistory {
		s.Equal(constants.ConsentActionGranted, event.Action)
		s.Equal("203.0.113.7", event.IPAddress)
		s.Equal("test-agent", event.UserAgent)
	}
	s.Equal(constants.ConsentMethodExplicitConsent, record.ConsentMethod)
}

func (s *ConsentServiceTestSuite) TestUpdateConsentWithdrawalAppendsHistory() {

	_, err := s.service.UpdateConsent("user-1",
		map[string]bool{constants.ConsentAnalytics: true}, model.CaptureContext{})
	s.Require().NoError(err)

	consents, err := s.service.UpdateConsent("user-1",
		map[string]bool{constants.ConsentAnalytics: false}, model.CaptureContext{})
	s.Require().NoError(err)
	s.False(consents[constants.ConsentAnalytics].Given)

	record, err := s.store.GetConsentRecord("user-1")
	s.Require().NoError(err)
	s.Require().Len(record.WithdrawalHistory, 2)
	s.Equal(constants.ConsentActionGranted, record.WithdrawalHistory[0].Action)
	s.Equal(constants.ConsentActionWithdrawn, record.WithdrawalHistory[1].Action)
	s.Equal(constants.ConsentAnalytics, record.WithdrawalHistory[1].ConsentType)
}

func (s *ConsentServiceTestSuite) TestUpdateConsentRejectsEssential() {

	_, err := s.service.UpdateConsent("user-1",
		map[string]bool{constants.ConsentEssential: false}, model.CaptureContext{})
	s.Require().Error(err)

	var clientError *errors2.ClientError
	s.Require().ErrorAs(err, &clientError)
	s.Equal(http.StatusBadRequest, clientError.StatusCode)
	s.Equal(errors2.ESSENTIAL_CONSENT_IMMUTABLE.Code, clientError.ErrorMessage.Code)

	record, err := s.store.GetConsentRecord("user-1")
	s.Require().NoError(err)
	s.Nil(record)
}

func (s *ConsentServiceTestSuite) TestUpdateConsentRejectsUnknownType() {

	_, err := s.service.UpdateConsent("user-1",
		map[string]bool{"biometrics": true}, model.CaptureContext{})
	s.Require().Error(err)

	var clientError *errors2.ClientError
	s.Require().ErrorAs(err, &clientError)
	s.Equal(errors2.CONSENT_VALIDATION.Code, clientError.ErrorMessage.Code)
}

func (s *ConsentServiceTestSuite) TestUpdateConsentRejectsEmptyUpdate() {

	_, err := s.service.UpdateConsent("user-1", map[string]bool{}, model.CaptureContext{})
	s.Require().Error(err)

	var clientError *errors2.ClientError
	s.Require().ErrorAs(err, &clientError)
	s.Equal(http.StatusBadRequest, clientError.StatusCode)
}

func (s *ConsentServiceTestSuite) TestUpdateConsentRejectsUnknownMethod() {

	_, err := s.service.UpdateConsent("user-1",
		map[string]bool{constants.ConsentAnalytics: true},
		model.CaptureContext{Method: "telepathy"})
	s.Require().Error(err)

	var clientError *errors2.ClientError
	s.Require().ErrorAs(err, &clientError)
	s.Equal(errors2.CONSENT_VALIDATION.Code, clientError.ErrorMessage.Code)
}

func (s *ConsentServiceTestSuite) TestHistoryGrowsByExactlyOnePerType() {

	for i := 0; i < 3; i++ {
		_, err := s.service.UpdateConsent("user-1",
			map[string]bool{constants.ConsentAnalytics: i%2 == 0}, model.CaptureContext{})
		s.Require().NoError(err)
	}

	record, err := s.store.GetConsentRecord("user-1")
	s.Require().NoError(err)
	s.Len(record.WithdrawalHistory, 3)
}

func (s *ConsentServiceTestSuite) TestRecordRegistrationConsent() {

	err := s.service.RecordRegistrationConsent("user-1",
		map[string]bool{constants.ConsentAnalytics: true, constants.ConsentDataProcessing: true},
		model.CaptureContext{IPAddress: "203.0.113.9"})
	s.Require().NoError(err)

	record, err := s.store.GetConsentRecord("user-1")
	s.Require().NoError(err)
	s.Require().NotNil(record)
	s.Equal(constants.ConsentMethodRegistration, record.ConsentMethod)
	s.True(record.Consents[constants.ConsentAnalytics].Given)
	s.True(record.Consents[constants.ConsentDataProcessing].Given)
}

func (s *ConsentServiceTestSuite) TestGetConsentFillsMissingTypes() {

	_, err := s.service.UpdateConsent("user-1",
		map[string]bool{constants.ConsentAnalytics: true}, model.CaptureContext{})
	s.Require().NoError(err)

	record, err := s.service.GetConsent("user-1")
	s.Require().NoError(err)

	s.Len(record.Consents, 5)
	s.True(record.Consents[constants.ConsentEssential].Given)
	s.True(record.Consents[constants.ConsentAnalytics].Given)
	s.False(record.Consents[constants.ConsentMarketing].Given)
}
