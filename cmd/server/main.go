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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	accountservice "github.com/refugehub/privacy-data-service/internal/account/service"
	"github.com/refugehub/privacy-data-service/internal/system/config"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	"github.com/refugehub/privacy-data-service/internal/system/database/document"
	"github.com/refugehub/privacy-data-service/internal/system/log"
	"github.com/refugehub/privacy-data-service/internal/system/managers"
	"github.com/refugehub/privacy-data-service/internal/system/sanitizer"
	"github.com/refugehub/privacy-data-service/internal/system/schedulers"
)

func main() {
	pdsHome := getPDSHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	// Load the configuration file.
	pdsConfig, err := config.LoadConfig(pdsHome, constants.ConfigFilePath)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializePDSRuntime(pdsHome, pdsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Initialize logger.
	if err := log.Init(pdsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	// Initialize the document store (consent records).
	if err := document.Init(pdsConfig.DocumentStore); err != nil {
		logger.Fatal("Failed to initialize the document store", log.Error(err))
	}
	defer func() {
		if err := document.Disconnect(); err != nil {
			logger.Warn("Failed to disconnect from the document store", log.Error(err))
		}
	}()

	// Start the deletion reaper.
	if pdsConfig.Scheduler.DeletionReaperEnabled {
		interval := time.Duration(pdsConfig.Scheduler.DeletionReaperInterval) * time.Minute
		if interval <= 0 {
			interval = time.Hour
		}
		go schedulers.StartDeletionReaper(accountservice.GetAccountService(), interval)
	}

	serverAddr := fmt.Sprintf("%s:%d", pdsConfig.Addr.Host, pdsConfig.Addr.Port)
	mux := enableCORS(initMultiplexer())
	logger.Info("Privacy data service starting", log.String("address", serverAddr))

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer, registers the services and
// wraps the mux with the request sanitizer.
func initMultiplexer() http.Handler {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return sanitizer.New(sanitizer.DefaultRules()).Middleware(mux)
}

func enableCORS(next http.Handler) http.Handler {
	allowedOrigins := config.GetPDSRuntime().Config.Auth.CORSAllowedOrigins

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range allowedOrigins {
			if allowed == "*" || allowed == origin {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				break
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, x-auth-token")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getPDSHome() string {

	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("pdsHome", "", "Path to privacy data service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}

	return projectHome
}
