// Package client contains the client-side building blocks of the rpgkeeper
// CLI: the Client contract, its gRPC implementation (GRPCClient) and the
// local SQLite bootstrap (InitDatabase, RunMigrations).
//
// GRPCClient attaches the access token to every call through a unary
// interceptor and maps gRPC status codes to sentinel errors:
// ErrUnauthorized, ErrUnavailable and common.ErrTokenExpired.
package client
