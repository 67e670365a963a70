// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

// # Cookie Transport

// CookieAdapter maps a session pair to and from browser cookies.
//
// Issue, Renew and Clear are pure: they return the cookie set and leave
// attaching it to the response to [WriteCookies].
type CookieAdapter struct {
	production bool
	domain     string
}

// NewCookieAdapter builds an adapter. domain is honoured in development
// only, where it enables SameSite=None for a cross-site front end.
func NewCookieAdapter(production bool, domain string) *CookieAdapter {
	return &CookieAdapter{production: production, domain: domain}
}

/*
Read extracts the credential pair from request cookies.

Returns:
  - Pair: Session id and raw bearer token, either possibly empty
  - error: UnknownTokenFormat if the bearer cookie lacks the "Bearer " prefix
*/
func (adapter *CookieAdapter) Read(request *http.Request) (Pair, error) {
	var pair Pair

	if cookie, err := request.Cookie(constants.CookieSession); err == nil {
		pair.SessionID = cookie.Value
	}

	cookie, err := request.Cookie(constants.CookieBearer)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return pair, nil
	}
	if err != nil {
		return pair, apperr.UnknownTokenFormat()
	}

	token, err := StripBearerPrefix(cookie.Value)
	if err != nil {
		return pair, err
	}
	pair.Bearer = token

	return pair, nil
}

// Issue returns both cookies for a freshly begun session.
func (adapter *CookieAdapter) Issue(credential Credential, bearer sec.Bearer) []*http.Cookie {
	maxAge := credential.ExpiresAt.Sub(bearer.IssuedAt)

	return []*http.Cookie{
		{
			Name:     constants.CookieSession,
			Value:    credential.SessionID,
			Path:     "/",
			Secure:   true,
			MaxAge:   int(maxAge / time.Second),
			SameSite: http.SameSiteDefaultMode,
		},
		adapter.bearerCookie(bearer.Token),
	}
}

// Renew returns the bearer cookie alone, used after a refresh.
func (adapter *CookieAdapter) Renew(bearer sec.Bearer) []*http.Cookie {
	return []*http.Cookie{adapter.bearerCookie(bearer.Token)}
}

// Clear returns expiring, empty versions of both cookies.
func (adapter *CookieAdapter) Clear() []*http.Cookie {
	session := &http.Cookie{
		Name:   constants.CookieSession,
		Path:   "/",
		Secure: true,
		MaxAge: -1,
	}

	bearer := adapter.bearerCookie("")
	bearer.Value = ""
	bearer.MaxAge = -1

	return []*http.Cookie{session, bearer}
}

func (adapter *CookieAdapter) bearerCookie(token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constants.CookieBearer,
		Value:    constants.BearerPrefix + token,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		MaxAge:   int(constants.BearerCookieMaxAge / time.Second),
		SameSite: http.SameSiteStrictMode,
	}

	if !adapter.production {
		if adapter.domain != "" {
			cookie.SameSite = http.SameSiteNoneMode
			cookie.Domain = adapter.domain
		} else {
			cookie.SameSite = http.SameSiteLaxMode
		}
	}

	return cookie
}

// WriteCookies attaches cookies to the response.
func WriteCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		http.SetCookie(w, cookie)
	}
}

// StripBearerPrefix removes the literal "Bearer " marker shared by the
// cookie and Photon transports.
func StripBearerPrefix(value string) (string, error) {
	token, ok := strings.CutPrefix(value, constants.BearerPrefix)
	if !ok || token == "" {
		return "", apperr.UnknownTokenFormat()
	}
	return token, nil
}
