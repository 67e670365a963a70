// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/middleware"
	requestutil "github.com/Metaversitas/Metaversitas-2.0/internal/platform/request"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/respond"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/validate"
)

const (
	fieldFullName        = "full_name"
	fieldGender          = "gender"
	fieldPhotoKey        = "photo_key"
	fieldCurrentPassword = "current_password"
	fieldNewPassword     = "new_password"

	maxFullNameLength = 100
	maxPhotoKeyLength = 255
)

// Handler implements the HTTP layer for the /user endpoints.
type Handler struct {
	accountService *Service
	gate           *middleware.Gate
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, gate *middleware.Gate) *Handler {
	return &Handler{accountService: service, gate: gate}
}

// Routes returns a [chi.Router] configured with the account endpoints.
//
// # Endpoints
//   - GET   /profile  : The caller's profile.
//   - PATCH /profile  : Partial identity update.
//   - PUT   /password : Password change.
//   - GET   /role     : Functional and university roles.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(handler.gate.Required)

		r.Get("/profile", handler.getProfile)
		r.Patch("/profile", handler.updateProfile)
		r.Put("/password", handler.changePassword)
	})

	router.Group(func(r chi.Router) {
		r.Use(handler.gate.WithRole)

		r.Get("/role", handler.getRole)
	})

	return router
}

// # User Profile Endpoints

/*
GET /user/profile.

Description: Returns the cached profile aggregate of the authenticated user.

Response:
  - 200: {"status": true, "data": ProfileView}
  - 401: Unauthorized access
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.accountService.GetProfile(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Status(writer, view)
}

// updateProfileRequest defines the expected JSON payload for identity updates.
type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Gender   *string `json:"gender"`
	PhotoKey *string `json:"photo_key"`
}

/*
PATCH /user/profile.

Description: Applies partial updates to the caller's identity.

Request:
  - body: updateProfileRequest (Partial JSON)

Response:
  - 200: {"status": true, "data": ProfileView}
  - 401: Unauthorized access
  - 422: Validation failure
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.FullName != nil {
		v.Required(fieldFullName, *input.FullName).MaxLen(fieldFullName, *input.FullName, maxFullNameLength)
	}
	if input.Gender != nil {
		v.OneOf(fieldGender, *input.Gender, string(sec.GenderMale), string(sec.GenderFemale))
	}
	if input.PhotoKey != nil {
		v.Required(fieldPhotoKey, *input.PhotoKey).MaxLen(fieldPhotoKey, *input.PhotoKey, maxPhotoKeyLength)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := IdentityUpdate{FullName: input.FullName, PhotoKey: input.PhotoKey}
	if input.Gender != nil {
		gender := sec.Gender(*input.Gender)
		update.Gender = &gender
	}

	view, err := handler.accountService.UpdateIdentity(request.Context(), principal.UserID, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Status(writer, view)
}

// # Credentials Endpoints

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
PUT /user/password.

Description: Replaces the password after verifying the current one. Existing
sessions stay valid.

Response:
  - 200: {"success": true, "message": "Password successfully changed"}
  - 401: Invalid username or password
  - 422: Validation failure
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(fieldCurrentPassword, input.CurrentPassword).
		Password(fieldNewPassword, input.NewPassword).
		Custom(fieldNewPassword, input.NewPassword == input.CurrentPassword, "Must differ from the current password")

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), principal.UserID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Password successfully changed", nil)
}

// # Role Endpoints

/*
GET /user/role.

Response:
  - 200: {"status": true, "data": RoleView}
  - 401: Unauthorized access
  - 500: Missing or inconsistent role data
*/
func (handler *Handler) getRole(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredRolePrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Status(writer, RoleView{
		UserID:         principal.UserID,
		FunctionalRole: principal.FunctionalRole,
		UniversityRole: principal.UniversityRole,
	})
}
