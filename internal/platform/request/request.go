// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away body decoding and principal lookup, ensuring consistent
error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/validate"
)

// maxBodyBytes caps JSON payloads; auth bodies are a few hundred bytes.
const maxBodyBytes = 64 << 10

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}

	if err := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes)).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Principal extracts the authenticated principal from the request context.

Returns nil if the request is anonymous.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the principal.

Returns:
  - *sec.Principal: The authenticated identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized()
	}
	return principal, nil
}

/*
RequiredRolePrincipal returns the role-enriched principal or Unauthorized.
*/
func RequiredRolePrincipal(request *http.Request) (*sec.RolePrincipal, error) {
	principal := ctxutil.GetRolePrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized()
	}
	return principal, nil
}
