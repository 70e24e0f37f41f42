// Package jsonloader loads dataset documents in the JSON shape served by the
// data portal: a dataset object with `@id`, `accession`,
// `contributing_files` and an embedded `files` array. A document may also be
// a bare array of file objects. References (`derived_from`,
// `contributing_files`) are either identifier strings or embedded objects
// carrying an `@id`.
package jsonloader
