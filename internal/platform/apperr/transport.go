// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package apperr

import "net/http"

// # Photon Result Codes

const (
	// ResultIncomplete asks the game client to continue the auth exchange.
	ResultIncomplete = 0
	// ResultOK is the Photon success code.
	ResultOK = 1
	// ResultFailed rejects the credentials.
	ResultFailed = 2
	// ResultInvalidParameters covers every other failure.
	ResultInvalidParameters = 3
)

// WebMapping is how a kind is rendered to a browser client.
type WebMapping struct {
	Status  int
	Message string
}

// PhotonMapping is how a kind is rendered to the Photon game client.
type PhotonMapping struct {
	Status     int
	ResultCode int
	Message    string
}

// # Web Transport

var webMappings = map[Kind]WebMapping{
	KindUnknown:                   {http.StatusInternalServerError, "Internal Server Error"},
	KindInvalidUsernameOrPassword: {http.StatusUnauthorized, "Invalid username or password"},
	KindUnauthorized:              {http.StatusUnauthorized, "Unauthorized access"},
	KindUnknownTokenFormat:        {http.StatusUnprocessableEntity, "Unknown format of token"},
	KindUserAlreadyExists:         {http.StatusConflict, "User already registered"},
	KindUserNotExist:              {http.StatusUnauthorized, "User does not exist."},
	KindUnableCreateSession:       {http.StatusInternalServerError, "Internal Server Error"},
	KindDatabase:                  {http.StatusInternalServerError, "Internal Server Error"},
	KindRedis:                     {http.StatusInternalServerError, "Internal Server Error"},
	KindInvalidGameVersion:        {http.StatusForbidden, "Invalid game version."},
	KindOutdatedGameVersion:       {http.StatusForbidden, "Outdated game version."},
	KindInvalidApiKey:             {http.StatusUnauthorized, "Invalid api key."},
	KindInvalidParameters:         {http.StatusUnprocessableEntity, "Invalid parameter given, try to check again."},
	KindIncomplete:                {http.StatusConflict, "Authentication incomplete."},
	KindProfileUnavailable:        {http.StatusInternalServerError, "Internal Server Error"},
}

// Web maps err onto the browser transport.
//
// Validation failures keep their own reason; every other kind uses the
// fixed client message so store errors never leak.
func Web(err error) WebMapping {
	kind := KindOf(err)
	mapping, ok := webMappings[kind]
	if !ok {
		mapping = webMappings[KindUnknown]
	}
	if ae := As(err); ae != nil && ae.Kind == KindInvalidParameters && ae.Message != "" {
		mapping.Message = ae.Message
	}
	return mapping
}

// # Photon Transport

var photonMappings = map[Kind]PhotonMapping{
	KindUnknown:                   {http.StatusInternalServerError, ResultInvalidParameters, "Internal Server Error."},
	KindInvalidUsernameOrPassword: {http.StatusUnauthorized, ResultFailed, "Authentication Failed. Wrong credentials."},
	KindUnauthorized:              {http.StatusUnauthorized, ResultFailed, "Unauthorized access."},
	KindUnknownTokenFormat:        {http.StatusUnprocessableEntity, ResultInvalidParameters, "Invalid parameter given, try to check again."},
	KindUserAlreadyExists:         {http.StatusConflict, ResultFailed, "User already exists."},
	KindUserNotExist:              {http.StatusForbidden, ResultFailed, "User does not exist."},
	KindUnableCreateSession:       {http.StatusInternalServerError, ResultInvalidParameters, "Internal Server Error."},
	KindDatabase:                  {http.StatusInternalServerError, ResultInvalidParameters, "Internal Server Error."},
	KindRedis:                     {http.StatusInternalServerError, ResultInvalidParameters, "Internal Server Error."},
	KindInvalidGameVersion:        {http.StatusForbidden, ResultInvalidParameters, "Invalid game version."},
	KindOutdatedGameVersion:       {http.StatusForbidden, ResultInvalidParameters, "Outdated game version."},
	KindInvalidApiKey:             {http.StatusUnauthorized, ResultInvalidParameters, "Invalid api key."},
	KindInvalidParameters:         {http.StatusUnprocessableEntity, ResultInvalidParameters, "Invalid parameter given, try to check again."},
	KindIncomplete:                {http.StatusConflict, ResultIncomplete, "Authentication incomplete."},
	KindProfileUnavailable:        {http.StatusInternalServerError, ResultInvalidParameters, "Internal Server Error."},
}

// Photon maps err onto the game client transport.
func Photon(err error) PhotonMapping {
	mapping, ok := photonMappings[KindOf(err)]
	if !ok {
		mapping = photonMappings[KindUnknown]
	}
	return mapping
}
