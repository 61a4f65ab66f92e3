// Package domain defines the core types and interfaces of the signup service.
//
// Concept-oriented files (teacher.go, session.go, activity.go, errors.go) hold the
// records and the contracts that adapters implement. Interfaces live here so the
// app layer and the adapters never import each other.
package domain
