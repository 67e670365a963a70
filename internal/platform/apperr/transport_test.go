// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
)

/*
TestMapping_Totality verifies that every kind has an explicit entry in both
transports and that only infrastructure kinds answer with a 5xx.
*/
func TestMapping_Totality(t *testing.T) {
	serverSide := map[apperr.Kind]bool{
		apperr.KindUnknown:             true,
		apperr.KindUnableCreateSession: true,
		apperr.KindDatabase:            true,
		apperr.KindRedis:               true,
		apperr.KindProfileUnavailable:  true,
	}

	for _, kind := range apperr.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			err := &apperr.AppError{Kind: kind}

			web := apperr.Web(err)
			photon := apperr.Photon(err)

			assert.NotZero(t, web.Status)
			assert.NotEmpty(t, web.Message)
			assert.NotZero(t, photon.Status)
			assert.NotEmpty(t, photon.Message)
			assert.Contains(t, []int{0, 2, 3}, photon.ResultCode)

			if serverSide[kind] {
				assert.Equal(t, http.StatusInternalServerError, web.Status)
			} else {
				assert.Less(t, web.Status, 500)
			}
		})
	}
}

/*
TestMapping_Table pins the documented status and result codes.
*/
func TestMapping_Table(t *testing.T) {
	tests := []struct {
		kind       apperr.Kind
		webStatus  int
		photonCode int
		photonHTTP int
	}{
		{apperr.KindInvalidUsernameOrPassword, 401, 2, 401},
		{apperr.KindUnauthorized, 401, 2, 401},
		{apperr.KindUnknownTokenFormat, 422, 3, 422},
		{apperr.KindUserAlreadyExists, 409, 2, 409},
		{apperr.KindUserNotExist, 401, 2, 403},
		{apperr.KindUnableCreateSession, 500, 3, 500},
		{apperr.KindDatabase, 500, 3, 500},
		{apperr.KindRedis, 500, 3, 500},
		{apperr.KindInvalidGameVersion, 403, 3, 403},
		{apperr.KindOutdatedGameVersion, 403, 3, 403},
		{apperr.KindInvalidApiKey, 401, 3, 401},
		{apperr.KindInvalidParameters, 422, 3, 422},
		{apperr.KindIncomplete, 409, 0, 409},
		{apperr.KindUnknown, 500, 3, 500},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := &apperr.AppError{Kind: tt.kind}
			assert.Equal(t, tt.webStatus, apperr.Web(err).Status)
			assert.Equal(t, tt.photonCode, apperr.Photon(err).ResultCode)
			assert.Equal(t, tt.photonHTTP, apperr.Photon(err).Status)
		})
	}
}

/*
TestMapping_Messages checks the client-facing strings that game and web
clients match on.
*/
func TestMapping_Messages(t *testing.T) {
	assert.Equal(t, "Unauthorized access", apperr.Web(apperr.Unauthorized()).Message)
	assert.Equal(t, "Invalid game version.", apperr.Photon(apperr.InvalidGameVersion()).Message)
	assert.Equal(t, "Invalid game version.", apperr.Web(apperr.InvalidGameVersion()).Message)

	// Validation reasons reach the client on the web transport.
	err := apperr.InvalidParameters("Unknown format provider")
	assert.Equal(t, "Unknown format provider", apperr.Web(err).Message)
}

/*
TestMapping_ForeignErrors ensures unclassified errors fall back to Unknown
and infrastructure causes never leak.
*/
func TestMapping_ForeignErrors(t *testing.T) {
	raw := errors.New("pq: relation users does not exist")

	web := apperr.Web(raw)
	assert.Equal(t, http.StatusInternalServerError, web.Status)
	assert.NotContains(t, web.Message, "relation")

	wrapped := fmt.Errorf("handler: %w", apperr.Redis(raw))
	assert.Equal(t, apperr.KindRedis, apperr.KindOf(wrapped))
	assert.Equal(t, "Internal Server Error", apperr.Web(wrapped).Message)
	assert.ErrorIs(t, wrapped, raw)
	assert.ErrorIs(t, wrapped, apperr.Redis(nil))
	assert.NotErrorIs(t, wrapped, apperr.Database(nil))
}
