// Package app provides the application service layer.
//
// Orchestrates use cases: teacher login and logout, bearer token resolution, and
// roster signup and unregister. Sits between HTTP handlers and domain repositories.
// Depends on domain interfaces, not concrete implementations.
package app
