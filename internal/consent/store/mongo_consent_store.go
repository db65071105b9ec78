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

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/refugehub/privacy-data-service/internal/consent/model"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	"github.com/refugehub/privacy-data-service/internal/system/database/document"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

const consentCollection = "user_consents"

// MongoConsentStore persists consent records in the document store.
type MongoConsentStore struct {
	collection *mongo.Collection
}

// NewMongoConsentStore initializes a store over the user_consents collection.
func NewMongoConsentStore() ConsentStoreInterface {

	return &MongoConsentStore{
		collection: document.GetDatabase().Collection(consentCollection),
	}
}

// GetConsentRecord fetches the consent record for a user, or nil when absent.
func (s *MongoConsentStore) GetConsentRecord(userID string) (*model.ConsentRecord, error) {

	logger := log.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var record model.ConsentRecord
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch consent record for user: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_RECORD.Code,
			Message:     errors2.FETCH_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	return &record, nil
}

// ApplyConsentUpdate appends history events and sets consent flags in one
// atomic update command. The history append and the flag update land in the
// same document write, so a concurrent update cannot interleave between them.
func (s *MongoConsentStore) ApplyConsentUpdate(userID string, events []model.ConsentEvent,
	statuses map[string]model.ConsentStatus, capture model.CaptureContext) (*model.ConsentRecord, error) {

	logger := log.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()

	set := bson.M{
		"last_updated":   now,
		"ip_address":     capture.IPAddress,
		"user_agent":     capture.UserAgent,
		"consent_method": capture.Method,
	}
	for consentType, status := range statuses {
		set["consents."+consentType] = status
	}

	update := bson.M{
		"$push": bson.M{"withdrawal_history": bson.M{"$each": events}},
		"$set":  set,
		"$setOnInsert": bson.M{
			"user_id":                userID,
			"created_at":             now,
			"privacy_policy_version": constants.DefaultPrivacyPolicyVersion,
			"consents." + constants.ConsentEssential: model.ConsentStatus{Given: true, Timestamp: &now},
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var record model.ConsentRecord
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&record)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update consent record for user: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONSENT_RECORD.Code,
			Message:     errors2.UPDATE_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Consent record updated for user: %s", userID))
	return &record, nil
}
