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

package schedulers

import (
	"fmt"
	"time"

	"github.com/refugehub/privacy-data-service/internal/account/service"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

// StartDeletionReaper starts the periodic job that purges accounts whose
// deletion grace period has elapsed. Consent records are kept for audit.
func StartDeletionReaper(accountService service.AccountServiceInterface, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run once at startup
	purgeAccounts(accountService)

	for range ticker.C {
		purgeAccounts(accountService)
	}
}

// purgeAccounts deletes the due accounts and logs the outcome.
func purgeAccounts(accountService service.AccountServiceInterface) {
	logger := log.GetLogger()

	purged, err := accountService.PurgeExpiredAccounts()
	if err != nil {
		logger.Error("Failed to purge accounts scheduled for deletion", log.Error(err))
		return
	}

	if purged > 0 {
		logger.Info(fmt.Sprintf("Purged %d account(s) scheduled for deletion", purged))
	}
}
