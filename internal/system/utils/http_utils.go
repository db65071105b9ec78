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

package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	customerrors "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

// APIResponse is the JSON envelope returned by every privacy endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WriteSuccess writes a success envelope with the given status code.
func WriteSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// HandleError sends an HTTP error response envelope based on the provided error.
// Client errors surface their description; server errors are logged and return a
// generic message so no internal detail reaches the caller.
func HandleError(w http.ResponseWriter, err error) {

	w.Header().Set("Content-Type", "application/json")

	var clientError *customerrors.ClientError
	if ok := errors.As(err, &clientError); ok {
		message := clientError.ErrorMessage.Description
		if message == "" {
			message = clientError.ErrorMessage.Message
		}
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(APIResponse{
			Success: false,
			Error:   message,
		})
		return
	}

	logger := log.GetLogger()
	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger.Error(serverError.Error())
	} else {
		logger.Error("Unexpected error while handling request", log.Error(err))
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   "Internal server error",
	})
}
