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

package errors

const errorPrefix = "RPS-"

var (
	// Server error codes

	FETCH_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while fetching consent record.",
	}

	UPDATE_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while updating consent record.",
	}

	FETCH_USER = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching user account.",
	}

	UPDATE_USER = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while updating user account.",
	}

	DELETE_USER = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while deleting user account.",
	}

	ADD_DATA_EXPORT_REQUEST = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while recording data export request.",
	}

	FETCH_PRIVACY_POLICY = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while loading the privacy policy document.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Unable to initialize database client.",
	}

	DOC_STORE_INIT = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Unable to initialize document store client.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while un-marshalling JSON.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Parsing token failed.",
	}

	PURGE_ACCOUNTS = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while purging accounts scheduled for deletion.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Forbidden",
		Description: "You do not have permission to perform this operation.",
	}

	USER_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "User not found.",
		Description: "No user account found for the given user id.",
	}

	CONSENT_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Consent update validation failed.",
	}

	ESSENTIAL_CONSENT_IMMUTABLE = ErrorMessage{
		Code:        errorPrefix + "11006",
		Message:     "Essential consent cannot be changed.",
		Description: "The essential consent type is always granted and cannot be withdrawn.",
	}

	UPDATE_CONSENT_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Invalid consent update request.",
	}

	PRIVACY_SETTINGS_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Privacy settings validation failed.",
	}

	ACCEPT_POLICY_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Invalid policy acceptance request.",
	}

	ACCOUNT_DELETION_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Invalid account deletion request.",
	}
)
