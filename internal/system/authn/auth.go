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

package authn

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/refugehub/privacy-data-service/internal/system/config"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

// ValidateTokenAndReturnUserID verifies the signature and expiry of a bearer token
// and returns the subject claim as the authenticated user id.
func ValidateTokenAndReturnUserID(tokenString string) (string, error) {

	logger := log.GetLogger()
	secret := config.GetPDSRuntime().Config.Auth.JWTSecret

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		errMsg := "Error occurred when validating the bearer token."
		logger.Debug(errMsg, log.Error(err))
		return "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PARSING_ERROR.Code,
			Message:     errors2.PARSING_ERROR.Message,
			Description: errMsg,
		}, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		logger.Debug("Token does not carry map claims.")
		return "", errors2.NewServerError(errors2.PARSING_ERROR, nil)
	}

	if !validateClaims(claims) {
		return "", errors2.NewServerError(errors2.PARSING_ERROR, nil)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		logger.Debug("Token does not carry a subject claim.", log.Error(err))
		return "", errors2.NewServerError(errors2.PARSING_ERROR, err)
	}
	return sub, nil
}

// validateClaims ensures the token has not expired.
func validateClaims(claims jwt.MapClaims) bool {

	logger := log.GetLogger()
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		logger.Debug("Token does not have a valid expiration time.")
		return false
	}
	if exp.Before(time.Now()) {
		logger.Debug("Token has expired.")
		return false
	}
	return true
}
