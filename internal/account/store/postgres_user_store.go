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
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/refugehub/privacy-data-service/internal/account/model"
	dbprovider "github.com/refugehub/privacy-data-service/internal/system/database/provider"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

const (
	queryGetUser = `SELECT id, email, policy_version_accepted, policy_accepted_at, deletion_scheduled_at,
		deletion_reason, privacy_settings, created_at, updated_at FROM users WHERE id = $1`
	queryUpdatePolicyAcceptance = `UPDATE users SET policy_version_accepted = $2, policy_accepted_at = $3,
		updated_at = $3 WHERE id = $1 RETURNING id`
	queryScheduleDeletion = `UPDATE users SET deletion_scheduled_at = $2, deletion_reason = $3,
		updated_at = $4 WHERE id = $1 RETURNING id`
	queryCancelDeletion = `UPDATE users SET deletion_scheduled_at = NULL, deletion_reason = NULL,
		updated_at = $2 WHERE id = $1 RETURNING id`
	queryUpdatePrivacySettings = `UPDATE users SET privacy_settings = $2, updated_at = $3
		WHERE id = $1 RETURNING id`
	queryInsertExportRequest = `INSERT INTO data_export_requests (id, user_id, status, requested_at)
		VALUES ($1, $2, $3, $4)`
	queryListUsersDueForDeletion = `SELECT id, email, policy_version_accepted, policy_accepted_at,
		deletion_scheduled_at, deletion_reason, privacy_settings, created_at, updated_at
		FROM users WHERE deletion_scheduled_at IS NOT NULL AND deletion_scheduled_at <= $1`
	queryDeleteUser = `DELETE FROM users WHERE id = $1`
)

// PostgresUserStore persists user accounts in the relational database.
type PostgresUserStore struct {
	dbProvider dbprovider.DBProviderInterface
}

// NewPostgresUserStore creates a store over the configured data source.
func NewPostgresUserStore() UserStoreInterface {

	return &PostgresUserStore{dbProvider: dbprovider.NewDBProvider()}
}

// GetUser fetches the account row for a user, or nil when absent.
func (s *PostgresUserStore) GetUser(userID string) (*model.User, error) {

	rows, err := s.query(queryGetUser, errors2.FETCH_USER,
		fmt.Sprintf("Failed to fetch user: %s", userID), userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return scanUser(rows[0])
}

// UpdatePolicyAcceptance records the accepted policy version and timestamp.
func (s *PostgresUserStore) UpdatePolicyAcceptance(userID, version string, acceptedAt time.Time) error {

	return s.mutateUser(queryUpdatePolicyAcceptance, userID,
		fmt.Sprintf("Failed to record policy acceptance for user: %s", userID),
		userID, version, acceptedAt)
}

// ScheduleDeletion sets the deletion timestamp and reason on the account.
func (s *PostgresUserStore) ScheduleDeletion(userID string, scheduledAt time.Time, reason string) error {

	return s.mutateUser(queryScheduleDeletion, userID,
		fmt.Sprintf("Failed to schedule deletion for user: %s", userID),
		userID, scheduledAt, reason, time.Now().UTC())
}

// CancelDeletion clears any pending deletion schedule.
func (s *PostgresUserStore) CancelDeletion(userID string) error {

	return s.mutateUser(queryCancelDeletion, userID,
		fmt.Sprintf("Failed to cancel deletion for user: %s", userID),
		userID, time.Now().UTC())
}

// UpdatePrivacySettings replaces the account's privacy settings JSON document.
func (s *PostgresUserStore) UpdatePrivacySettings(userID string, settings model.PrivacySettings) error {

	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}
	return s.mutateUser(queryUpdatePrivacySettings, userID,
		fmt.Sprintf("Failed to update privacy settings for user: %s", userID),
		userID, settingsJSON, time.Now().UTC())
}

// InsertDataExportRequest records a new data export request.
func (s *PostgresUserStore) InsertDataExportRequest(request model.DataExportRequest) error {

	_, err := s.query(queryInsertExportRequest, errors2.ADD_DATA_EXPORT_REQUEST,
		fmt.Sprintf("Failed to record data export request for user: %s", request.UserID),
		request.ID, request.UserID, request.Status, request.RequestedAt)
	return err
}

// ListUsersDueForDeletion returns accounts whose schedule passed the cutoff.
func (s *PostgresUserStore) ListUsersDueForDeletion(cutoff time.Time) ([]model.User, error) {

	rows, err := s.query(queryListUsersDueForDeletion, errors2.FETCH_USER,
		"Failed to list users due for deletion", cutoff)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		user, err := scanUser(row)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// DeleteUser removes the account row permanently. Consent records in the
// document store are left in place for audit.
func (s *PostgresUserStore) DeleteUser(userID string) error {

	_, err := s.query(queryDeleteUser, errors2.DELETE_USER,
		fmt.Sprintf("Failed to delete user: %s", userID), userID)
	return err
}

// query runs the statement through the database client and wraps failures.
func (s *PostgresUserStore) query(statement string, errorMessage errors2.ErrorMessage,
	failureMsg string, args ...interface{}) ([]map[string]interface{}, error) {

	logger := log.GetLogger()
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		logger.Debug("Failed to get database client", log.Error(err))
		return nil, errors2.NewServerError(errors2.DB_CLIENT_INIT, err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(statement, args...)
	if err != nil {
		logger.Debug(failureMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errorMessage.Code,
			Message:     errorMessage.Message,
			Description: failureMsg,
		}, err)
	}
	return rows, nil
}

// mutateUser runs an update that returns the id of the touched row, so a
// missing account surfaces as USER_NOT_FOUND instead of a silent no-op.
func (s *PostgresUserStore) mutateUser(statement, userID, failureMsg string, args ...interface{}) error {

	rows, err := s.query(statement, errors2.UPDATE_USER, failureMsg, args...)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors2.NewClientError(errors2.USER_NOT_FOUND, http.StatusNotFound)
	}
	return nil
}

// scanUser maps a result row into a user model.
func scanUser(row map[string]interface{}) (*model.User, error) {

	user := model.User{PrivacySettings: model.DefaultPrivacySettings()}

	if v, ok := row["id"].(string); ok {
		user.ID = v
	}
	if v, ok := row["email"].(string); ok {
		user.Email = v
	}
	if v, ok := row["policy_version_accepted"].(string); ok {
		user.PolicyVersionAccepted = v
	}
	if v, ok := row["policy_accepted_at"].(time.Time); ok {
		t := v
		user.PolicyAcceptedAt = &t
	}
	if v, ok := row["deletion_scheduled_at"].(time.Time); ok {
		t := v
		user.DeletionScheduledAt = &t
	}
	if v, ok := row["deletion_reason"].(string); ok {
		user.DeletionReason = v
	}
	if v, ok := row["created_at"].(time.Time); ok {
		user.CreatedAt = v
	}
	if v, ok := row["updated_at"].(time.Time); ok {
		user.UpdatedAt = v
	}

	switch v := row["privacy_settings"].(type) {
	case []byte:
		if len(v) > 0 {
			if err := json.Unmarshal(v, &user.PrivacySettings); err != nil {
				return nil, errors2.NewServerError(errors2.UNMARSHAL_JSON, err)
			}
		}
	case string:
		if v != "" {
			if err := json.Unmarshal([]byte(v), &user.PrivacySettings); err != nil {
				return nil, errors2.NewServerError(errors2.UNMARSHAL_JSON, err)
			}
		}
	}

	return &user, nil
}
