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

package document

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/refugehub/privacy-data-service/internal/system/config"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

var (
	mongoClient   *mongo.Client
	mongoDatabase *mongo.Database
	once          sync.Once
)

// Init connects to the configured document store and pings it once.
func Init(cfg config.DocumentStoreConfig) error {

	var initErr error
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(cfg.URI)
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			initErr = fmt.Errorf("failed to connect to document store: %w", err)
			return
		}

		if err := client.Ping(ctx, nil); err != nil {
			initErr = fmt.Errorf("failed to ping document store: %w", err)
			return
		}

		mongoClient = client
		mongoDatabase = client.Database(cfg.Database)
		log.GetLogger().Info("Document store connection established", log.String("database", cfg.Database))
	})
	return initErr
}

// GetDatabase returns the document store database handle.
func GetDatabase() *mongo.Database {

	if mongoDatabase == nil {
		panic("document store is not initialized")
	}
	return mongoDatabase
}

// Ping verifies document store connectivity. Used by the readiness check.
func Ping() error {

	if mongoClient == nil {
		return fmt.Errorf("document store is not initialized")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return mongoClient.Ping(ctx, nil)
}

// Disconnect closes the document store connection.
func Disconnect() error {

	if mongoClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return mongoClient.Disconnect(ctx)
}
