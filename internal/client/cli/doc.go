// Package cli provides the interactive rpgkeeper command-line client.
//
// It wires configuration, the local session database, the API services and
// a REPL. On start the saved session (or the token given with -t) is
// restored and a background watcher pings the server to show whether it is
// online.
//
// Commands: register, login, reset, list, show, add, update, delete,
// portrait, logout, help, exit.
package cli
