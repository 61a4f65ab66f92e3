// Package jsonfile loads read-only startup data from JSON files: the teacher
// credential store and an optional activity catalog seed.
package jsonfile
