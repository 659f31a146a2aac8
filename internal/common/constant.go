// Package common contains shared constants and sentinel errors used across
// panelkeeper components.
package common

// TokenStorageKey is the metadata key under which the current access token
// is persisted in the local database.
const TokenStorageKey = "token"

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"
