// Package service contains the application use cases of the Thrones API.
// It orchestrates domain objects and the repositories defined in
// internal/store: it validates input that survived HTTP decoding, opens
// transactions around read-modify-write sequences, sorts characters, and
// registers and authenticates users.
//
// The service layer depends on domain entities and store interfaces, never
// on a specific database implementation.
package service
