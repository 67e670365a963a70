// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/respond"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/profile"
	"github.com/Metaversitas/Metaversitas-2.0/internal/session"
)

// ProfileLookup resolves the cached profile of a user.
type ProfileLookup interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

// RoleLookup resolves the platform-wide role of a user.
type RoleLookup interface {
	GetFunctionalRole(ctx context.Context, userID string) (sec.UserRole, error)
}

// Gate authenticates browser requests from the session cookie pair.
//
// It is the only place a silent refresh happens: when the bearer has expired
// but its credential is live, the renewed bearer cookie is attached to the
// response and the request proceeds. Handlers never see an expired bearer.
type Gate struct {
	sessions *session.Manager
	cookies  *session.CookieAdapter
	profiles ProfileLookup
	roles    RoleLookup
}

// NewGate constructs a [Gate].
func NewGate(sessions *session.Manager, cookies *session.CookieAdapter, profiles ProfileLookup, roles RoleLookup) *Gate {
	return &Gate{
		sessions: sessions,
		cookies:  cookies,
		profiles: profiles,
		roles:    roles,
	}
}

// Optional attaches a principal when the request carries a valid pair.
//
// # Flow
//  1. No cookies: proceed anonymously.
//  2. A pair that does not authenticate: proceed anonymously.
//  3. A pair that authenticates: attach the principal, renewing if needed.
//
// Infrastructure failures still abort the request.
func (gate *Gate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		pair, err := gate.cookies.Read(request)
		if err != nil || (pair.SessionID == "" && pair.Bearer == "") {
			next.ServeHTTP(writer, request)
			return
		}

		principal, err := gate.authenticate(writer, request, pair)
		if err != nil {
			switch apperr.KindOf(err) {
			case apperr.KindUnauthorized, apperr.KindUnknownTokenFormat:
				next.ServeHTTP(writer, request)
			default:
				respond.Error(writer, request, err)
			}
			return
		}

		next.ServeHTTP(writer, withPrincipal(request, principal))
	})
}

// Required blocks requests that do not carry an authenticating pair.
//
// # Flow
//  1. Read the pair; a bearer cookie without its prefix is UnknownTokenFormat.
//  2. Missing halves are Unauthorized.
//  3. Delegate to the session manager; rejection is Unauthorized.
//  4. Attach the principal, and the renewed bearer cookie if one was minted.
func (gate *Gate) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal, ok := gate.require(writer, request)
		if !ok {
			return
		}

		next.ServeHTTP(writer, withPrincipal(request, principal))
	})
}

// WithRole is [Gate.Required] plus the functional and university roles.
//
// # Flow
//  1. Run the Required checks.
//  2. Load the profile (university role) and the functional role.
//  3. Any missing or unrecognised role aborts with Unknown.
func (gate *Gate) WithRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal, ok := gate.require(writer, request)
		if !ok {
			return
		}

		request = withPrincipal(request, principal)
		ctx := request.Context()

		// ── 1. University Role ────────────────────────────────────────────
		userProfile, err := gate.profiles.Get(ctx, principal.UserID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		// ── 2. Functional Role ────────────────────────────────────────────
		functionalRole, err := gate.roles.GetFunctionalRole(ctx, principal.UserID)
		if err != nil {
			ctxutil.GetLogger(ctx).ErrorContext(ctx, "gate_role_lookup_failed", slog.Any("error", err))
			respond.Error(writer, request, apperr.Unknown(err))
			return
		}

		// ── 3. Consistency ────────────────────────────────────────────────
		if !functionalRole.Valid() || !userProfile.UniversityRole.Valid() {
			ctxutil.GetLogger(ctx).ErrorContext(ctx, "gate_role_inconsistent",
				slog.String("user_id", principal.UserID),
				slog.String("functional_role", string(functionalRole)),
				slog.String("university_role", string(userProfile.UniversityRole)),
			)
			respond.Error(writer, request, apperr.Unknown(nil))
			return
		}

		rolePrincipal := &sec.RolePrincipal{
			Principal:      *principal,
			FunctionalRole: functionalRole,
			UniversityRole: userProfile.UniversityRole,
		}

		next.ServeHTTP(writer, request.WithContext(ctxutil.WithRolePrincipal(ctx, rolePrincipal)))
	})
}

func (gate *Gate) require(writer http.ResponseWriter, request *http.Request) (*sec.Principal, bool) {
	pair, err := gate.cookies.Read(request)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, false
	}

	if pair.SessionID == "" || pair.Bearer == "" {
		respond.Error(writer, request, apperr.Unauthorized())
		return nil, false
	}

	principal, err := gate.authenticate(writer, request, pair)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, false
	}

	return principal, true
}

func (gate *Gate) authenticate(writer http.ResponseWriter, request *http.Request, pair session.Pair) (*sec.Principal, error) {
	authentication, err := gate.sessions.Authenticate(request.Context(), pair)
	if err != nil {
		return nil, err
	}

	if authentication.Renewed {
		session.WriteCookies(writer, gate.cookies.Renew(authentication.Bearer))
	}

	principal := authentication.Principal
	return &principal, nil
}

// withPrincipal attaches the principal and tags the request logger with it.
func withPrincipal(request *http.Request, principal *sec.Principal) *http.Request {
	ctx := ctxutil.WithPrincipal(request.Context(), principal)
	ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", principal.UserID)))
	return request.WithContext(ctx)
}
