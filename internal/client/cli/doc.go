// Package cli implements recipectl, a terminal client for the recipebox
// user API.
//
// The login token is kept in a local SQLite file between runs. whoami reads
// it without contacting the server; current asks the server to verify it.
package cli
