// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package session

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/validate"
	"github.com/Metaversitas/Metaversitas-2.0/internal/profile"
)

// # Photon Transport

// PhotonAuthData is the credential pair as the game client forwards it.
type PhotonAuthData struct {
	CookieAuth    string `json:"cookie_auth"`
	CookieSession string `json:"cookie_session"`
}

// PhotonRequest is the body of a Photon custom-auth callback.
type PhotonRequest struct {
	AuthData PhotonAuthData `json:"auth_data"`
}

// PhotonData is the user payload Photon hands to the game session.
type PhotonData struct {
	UserID           string             `json:"user_id"`
	InGameNickname   string             `json:"in_game_nickname"`
	FullName         string             `json:"full_name"`
	UniversityName   string             `json:"university_name"`
	FacultyName      string             `json:"faculty_name"`
	FacultyID        int64              `json:"faculty_id"`
	UserUniversityID int64              `json:"user_university_id"`
	UniversityRole   sec.UniversityRole `json:"user_univ_role"`
	Gender           sec.Gender         `json:"gender"`
	AuthCookie       string             `json:"auth_cookie"`
}

// PhotonEnvelope is the success response Photon expects from a custom auth provider.
type PhotonEnvelope struct {
	ResultCode int        `json:"ResultCode"`
	UserID     string     `json:"UserId"`
	Nickname   string     `json:"Nickname"`
	Data       PhotonData `json:"Data"`
}

// PhotonAdapter maps a session pair to and from the Photon payload.
type PhotonAdapter struct{}

// NewPhotonAdapter creates a Photon adapter.
func NewPhotonAdapter() *PhotonAdapter {
	return &PhotonAdapter{}
}

/*
Read decodes the auth_data payload into a credential pair.

Returns:
  - Pair: Session id and raw bearer token
  - error: InvalidParameters on malformed JSON, Incomplete when either field
    is empty, UnknownTokenFormat when cookie_auth lacks the "Bearer " prefix
*/
func (adapter *PhotonAdapter) Read(body io.Reader) (Pair, error) {
	var request PhotonRequest
	if err := json.NewDecoder(io.LimitReader(body, 16<<10)).Decode(&request); err != nil {
		return Pair{}, validate.ErrInvalidJSON
	}

	data := request.AuthData
	if data.CookieAuth == "" || data.CookieSession == "" {
		return Pair{}, apperr.Incomplete()
	}

	token, err := StripBearerPrefix(data.CookieAuth)
	if err != nil {
		return Pair{}, err
	}

	return Pair{SessionID: data.CookieSession, Bearer: token}, nil
}

// Envelope builds the success response for p with the pair the game client
// should keep using.
func (adapter *PhotonAdapter) Envelope(p *profile.Profile, sessionID string, bearer sec.Bearer) PhotonEnvelope {
	return PhotonEnvelope{
		ResultCode: apperr.ResultOK,
		UserID:     p.UserID,
		Nickname:   p.InGameNickname,
		Data: PhotonData{
			UserID:           p.UserID,
			InGameNickname:   p.InGameNickname,
			FullName:         p.FullName,
			UniversityName:   p.UniversityName,
			FacultyName:      p.FacultyName,
			FacultyID:        p.FacultyID,
			UserUniversityID: p.UserUniversityID,
			UniversityRole:   p.UniversityRole,
			Gender:           p.Gender,
			AuthCookie:       AuthCookie(sessionID, bearer.Token),
		},
	}
}

// AuthCookie renders the pair in the cookie-header form the game client replays.
func AuthCookie(sessionID, token string) string {
	return fmt.Sprintf("%s=%s;%s=%s%s", constants.CookieSession, sessionID, constants.CookieBearer, constants.BearerPrefix, token)
}
