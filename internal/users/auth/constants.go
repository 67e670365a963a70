// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package auth

// # Response Messages

const (
	MessageRegistered = "User successfully registered!"
	MessageLoggedIn   = "Successfully logged in"
	MessageRefreshed  = "New token generated"
	MessageLoggedOut  = "Successfully logged out"

	// MessageUnknownFormat rejects a format query other than photon.
	MessageUnknownFormat = "Unknown format provider"

	// MessageWalletUnsupported answers the wallet login schema, which is
	// accepted on the wire but not implemented.
	MessageWalletUnsupported = "Metamask login is not supported yet"
)
