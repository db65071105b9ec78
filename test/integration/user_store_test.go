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

package integration

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refugehub/privacy-data-service/internal/account/model"
	"github.com/refugehub/privacy-data-service/internal/account/store"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	"github.com/refugehub/privacy-data-service/internal/system/database/provider"
)

func seedUser(t *testing.T, userID string) {
	t.Helper()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	require.NoError(t, err)
	defer dbClient.Close()

	_, err = dbClient.ExecuteQuery(
		`INSERT INTO users (id, email) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		userID, userID+"@example.org")
	require.NoError(t, err)
}

func TestPostgresUserStoreLifecycle(t *testing.T) {
	requireIntegration(t)

	userStore := store.NewPostgresUserStore()
	userID := "it-" + uuid.New().String()
	seedUser(t, userID)

	user, err := userStore.GetUser(userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	// Accounts start with the default privacy settings.
	assert.Equal(t, constants.VisibilityCommunity, user.PrivacySettings.ProfileVisibility)

	// Policy acceptance.
	acceptedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, userStore.UpdatePolicyAcceptance(userID, "2.1", acceptedAt))
	user, err = userStore.GetUser(userID)
	require.NoError(t, err)
	assert.Equal(t, "2.1", user.PolicyVersionAccepted)
	require.NotNil(t, user.PolicyAcceptedAt)

	// Privacy settings round trip through the JSONB column.
	settings := model.DefaultPrivacySettings()
	settings.ProfileVisibility = constants.VisibilityPrivate
	settings.CommunicationPreferences.SMS = true
	require.NoError(t, userStore.UpdatePrivacySettings(userID, settings))
	user, err = userStore.GetUser(userID)
	require.NoError(t, err)
	assert.Equal(t, constants.VisibilityPrivate, user.PrivacySettings.ProfileVisibility)
	assert.True(t, user.PrivacySettings.CommunicationPreferences.SMS)

	// Deletion schedule and cancellation.
	scheduledAt := time.Now().UTC().AddDate(0, 0, constants.DeletionGracePeriodDays)
	require.NoError(t, userStore.ScheduleDeletion(userID, scheduledAt, "testing"))
	user, err = userStore.GetUser(userID)
	require.NoError(t, err)
	require.NotNil(t, user.DeletionScheduledAt)
	assert.Equal(t, "testing", user.DeletionReason)

	require.NoError(t, userStore.CancelDeletion(userID))
	user, err = userStore.GetUser(userID)
	require.NoError(t, err)
	assert.Nil(t, user.DeletionScheduledAt)
}

func TestPostgresUserStoreExportRequests(t *testing.T) {
	requireIntegration(t)

	userStore := store.NewPostgresUserStore()
	userID := "it-" + uuid.New().String()
	seedUser(t, userID)

	request := model.DataExportRequest{
		ID:          uuid.New().String(),
		UserID:      userID,
		Status:      constants.ExportStatusPending,
		RequestedAt: time.Now().UTC(),
	}
	require.NoError(t, userStore.InsertDataExportRequest(request))
}

func TestPostgresUserStorePurgeQuery(t *testing.T) {
	requireIntegration(t)

	userStore := store.NewPostgresUserStore()
	expiredID := "it-" + uuid.New().String()
	pendingID := "it-" + uuid.New().String()
	seedUser(t, expiredID)
	seedUser(t, pendingID)

	require.NoError(t, userStore.ScheduleDeletion(expiredID, time.Now().UTC().AddDate(0, 0, -1), ""))
	require.NoError(t, userStore.ScheduleDeletion(pendingID, time.Now().UTC().AddDate(0, 0, 10), ""))

	due, err := userStore.ListUsersDueForDeletion(time.Now().UTC())
	require.NoError(t, err)

	dueIDs := map[string]bool{}
	for _, user := range due {
		dueIDs[user.ID] = true
	}
	assert.True(t, dueIDs[expiredID])
	assert.False(t, dueIDs[pendingID])

	require.NoError(t, userStore.DeleteUser(expiredID))
	gone, err := userStore.GetUser(expiredID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPostgresUserStoreMissingUser(t *testing.T) {
	requireIntegration(t)

	userStore := store.NewPostgresUserStore()

	user, err := userStore.GetUser("it-missing-" + uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, user)

	err = userStore.UpdatePolicyAcceptance("it-missing-"+uuid.New().String(), "2.1", time.Now().UTC())
	require.Error(t, err)
}
