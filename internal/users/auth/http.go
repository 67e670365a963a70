// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/metrics"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/middleware"
	requestutil "github.com/Metaversitas/Metaversitas-2.0/internal/platform/request"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/respond"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/validate"
	"github.com/Metaversitas/Metaversitas-2.0/internal/profile"
	"github.com/Metaversitas/Metaversitas-2.0/internal/session"
)

// # Definitions & Constructors

// ProfileReader resolves the profile handed to the game client.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

// Handler implements the /auth endpoints for both browser and game clients.
type Handler struct {
	authService *Service
	sessions    *session.Manager
	cookies     *session.CookieAdapter
	photon      *session.PhotonAdapter
	profiles    ProfileReader
	gate        *middleware.Gate
}

// NewHandler constructs a new [Handler].
func NewHandler(
	service *Service,
	sessions *session.Manager,
	cookies *session.CookieAdapter,
	photon *session.PhotonAdapter,
	profiles ProfileReader,
	gate *middleware.Gate,
) *Handler {
	return &Handler{
		authService: service,
		sessions:    sessions,
		cookies:     cookies,
		photon:      photon,
		profiles:    profiles,
		gate:        gate,
	}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Issues a session as cookies or a Photon envelope.
//   - POST /photon   : Photon custom-auth callback for an existing session.
//   - GET  /refresh  : Mints a new bearer cookie from the session cookie.
//   - POST /logout   : Ends the session and clears cookies.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/photon", handler.photonAuth)
	router.Get("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.gate.Required)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	User struct {
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

// loginRequest accepts either the email/password schema or the wallet schema.
type loginRequest struct {
	User struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		WalletAddress string `json:"wallet_address"`
		SignedMessage string `json:"signed_message"`
	} `json:"user"`
}

func (input *loginRequest) isWallet() bool {
	return input.User.Email == "" && input.User.Password == "" &&
		(input.User.WalletAddress != "" || input.User.SignedMessage != "")
}

/*
Register handles the creation of a new user account.

POST /auth/register

Request:
  - Body: {"user": {"nickname", "email", "password"}}

Response:
  - 200: RegisteredUser
  - 409: User already registered
  - 422: Validation failure
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Nickname(FieldNickname, input.User.Nickname).
		Required(FieldEmail, input.User.Email).
		Email(FieldEmail, input.User.Email).
		Password(FieldPassword, input.User.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Nickname: input.User.Nickname,
		Email:    input.User.Email,
		Password: input.User.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MessageRegistered, RegisteredUser{
		UserID:     user.ID,
		Email:      user.Email,
		IsVerified: user.IsVerified,
	})
}

/*
Login authenticates a user and establishes a session.

POST /auth/login?format=photon&game_version=...&api_key=...

Description: Query parameters are checked first, then the game client
(version, api key), then the body. The result is delivered as cookies for
browsers or as a Photon envelope when format=photon.

Response:
  - 200: {"success", "message", "data": LoggedInUser} or the Photon envelope
  - 401: Invalid username or password / Invalid api key
  - 403: Invalid or outdated game version
  - 422: Validation failure
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	// ── 1. Query Parameters ─────────────────────────────────────────────
	params, err := parseLoginParams(request.URL.Query())
	fail := func(err error) {
		metrics.RecordLogin(string(params.Format), apperr.KindOf(err).String())
		if params.Format == FormatPhoton {
			respond.PhotonError(writer, request, err)
			return
		}
		respond.Error(writer, request, err)
	}
	if err != nil {
		fail(err)
		return
	}

	// ── 2. Game Client ──────────────────────────────────────────────────
	if err := handler.authService.CheckClient(ctx, params); err != nil {
		fail(err)
		return
	}

	// ── 3. Body ─────────────────────────────────────────────────────────
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(err)
		return
	}

	if input.isWallet() {
		fail(apperr.InvalidParameters(MessageWalletUnsupported))
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.User.Email).
		Email(FieldEmail, input.User.Email).
		Required(FieldPassword, input.User.Password).
		MaxLen(FieldPassword, input.User.Password, validate.PasswordMaxLength-1)
	if err := validator.Err(); err != nil {
		fail(err)
		return
	}

	// ── 4. Credentials & Session ────────────────────────────────────────
	result, err := handler.authService.Login(ctx, LoginInput{
		Email:    input.User.Email,
		Password: input.User.Password,
	})
	if err != nil {
		fail(err)
		return
	}

	// ── 5. Transport ────────────────────────────────────────────────────
	if params.Format == FormatPhoton {
		userProfile, err := handler.profiles.Get(ctx, result.User.ID)
		if err != nil {
			fail(err)
			return
		}

		metrics.RecordLogin(string(params.Format), "ok")
		respond.JSON(writer, http.StatusOK, handler.photon.Envelope(userProfile, result.Credential.SessionID, result.Bearer))
		return
	}

	metrics.RecordLogin(string(params.Format), "ok")
	session.WriteCookies(writer, handler.cookies.Issue(result.Credential, result.Bearer))
	respond.Message(writer, MessageLoggedIn, LoggedInUser{
		UserID:   result.User.ID,
		Email:    result.User.Email,
		Nickname: result.User.Nickname,
	})
}

// parseLoginParams validates the login query. The returned params carry the
// detected format even on error so the failure is rendered for the right client.
func parseLoginParams(query url.Values) (LoginParams, error) {
	params := LoginParams{Format: FormatWeb}

	if query.Has(FieldFormat) {
		if !strings.EqualFold(query.Get(FieldFormat), string(FormatPhoton)) {
			return params, apperr.InvalidParameters(MessageUnknownFormat)
		}
		params.Format = FormatPhoton
	}

	validator := &validate.Validator{}
	if query.Has(FieldGameVersion) {
		version := query.Get(FieldGameVersion)
		validator.Required(FieldGameVersion, version)
		params.GameVersion = &version
	}
	if query.Has(FieldApiKey) {
		key := query.Get(FieldApiKey)
		validator.Required(FieldApiKey, key)
		params.ApiKey = &key
	}

	return params, validator.Err()
}

/*
PhotonAuth authenticates a game client from a forwarded session pair.

POST /auth/photon

Request:
  - Body: {"auth_data": {"cookie_auth": "Bearer ...", "cookie_session": "..."}}

Response:
  - 200: Photon envelope (ResultCode 1)
  - 409: ResultCode 0 when auth_data is incomplete
  - 401/422/500: ResultCode 2 or 3
*/
func (handler *Handler) photonAuth(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	pair, err := handler.photon.Read(request.Body)
	if err != nil {
		respond.PhotonError(writer, request, err)
		return
	}

	authentication, err := handler.sessions.Authenticate(ctx, pair)
	if err != nil {
		respond.PhotonError(writer, request, err)
		return
	}

	userProfile, err := handler.profiles.Get(ctx, authentication.Principal.UserID)
	if err != nil {
		respond.PhotonError(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, handler.photon.Envelope(userProfile, pair.SessionID, authentication.Bearer))
}

/*
Refresh mints a new bearer cookie for the session in the session cookie.

GET /auth/refresh

Response:
  - 200: {"success": true, "message": "New token generated"}
  - 401: No session cookie or the session has ended
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.CookieSession)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized())
		return
	}

	bearer, err := handler.sessions.RefreshSession(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session.WriteCookies(writer, handler.cookies.Renew(bearer))
	respond.Message(writer, MessageRefreshed, nil)
}

/*
Logout ends the current session and clears both cookies.

POST /auth/logout

Response:
  - 200: {"success": true, "message": "Successfully logged out"}
  - 401: Unauthorized access
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.sessions.End(request.Context(), principal.SessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session.WriteCookies(writer, handler.cookies.Clear())
	respond.Message(writer, MessageLoggedOut, nil)
}
