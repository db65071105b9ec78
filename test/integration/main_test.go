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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/refugehub/privacy-data-service/internal/system/config"
	"github.com/refugehub/privacy-data-service/internal/system/database/provider"
	"github.com/refugehub/privacy-data-service/internal/system/log"
	"github.com/refugehub/privacy-data-service/test/setup"
)

var integrationEnabled bool

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TESTS") != "true" {
		// Container-backed tests only run when explicitly requested.
		os.Exit(m.Run())
	}
	integrationEnabled = true

	ctx := context.Background()
	os.Setenv("TEST_MODE", "true")

	config.OverridePDSRuntime(config.Config{
		Log: config.LogConfig{LogLevel: "debug"},
	})
	_ = log.Init("debug")

	pg, err := setup.SetupTestPostgres(ctx)
	if err != nil {
		fmt.Println("Failed to start test DB:", err)
		os.Exit(1)
	}

	provider.SetTestDB(pg.DB)

	schemaBytes, err := os.ReadFile(filepath.Join("..", "..", "dbscripts", "postgres.sql"))
	if err != nil {
		fmt.Println("Failed to read schema:", err)
		os.Exit(1)
	}
	if _, err := pg.DB.Exec(string(schemaBytes)); err != nil {
		fmt.Println("Failed to create tables from schema:", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = pg.Container.Terminate(ctx)

	os.Exit(code)
}

func requireIntegration(t *testing.T) {
	if !integrationEnabled {
		t.Skip("set INTEGRATION_TESTS=true to run container-backed tests")
	}
}
