// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package apperr

// # Error Taxonomy

// Kind is the canonical classification of every failure the API can report.
type Kind int

const (
	// KindUnknown is the fallback for errors that were never classified.
	KindUnknown Kind = iota
	KindInvalidUsernameOrPassword
	KindUnauthorized
	KindUnknownTokenFormat
	KindUserAlreadyExists
	KindUserNotExist
	KindUnableCreateSession
	KindDatabase
	KindRedis
	KindInvalidGameVersion
	KindOutdatedGameVersion
	KindInvalidApiKey
	KindInvalidParameters
	KindIncomplete
	KindProfileUnavailable

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:                   "unknown",
	KindInvalidUsernameOrPassword: "invalid_username_or_password",
	KindUnauthorized:              "unauthorized",
	KindUnknownTokenFormat:        "unknown_token_format",
	KindUserAlreadyExists:         "user_already_exists",
	KindUserNotExist:              "user_not_exist",
	KindUnableCreateSession:       "unable_create_session",
	KindDatabase:                  "database_error",
	KindRedis:                     "redis_error",
	KindInvalidGameVersion:        "invalid_game_version",
	KindOutdatedGameVersion:       "outdated_game_version",
	KindInvalidApiKey:             "invalid_api_key",
	KindInvalidParameters:         "invalid_parameters",
	KindIncomplete:                "incomplete",
	KindProfileUnavailable:        "profile_unavailable",
}

// String returns the snake_case name used in logs and metrics labels.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Kinds returns every declared kind, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := KindUnknown; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
