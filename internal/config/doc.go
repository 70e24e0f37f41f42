// Package config defines the format-agnostic load model for a dataset: the
// dataset record, its file records and optional assembly settings, along with
// the Loader interface implemented by the format-specific packages.
//
// The `config.Bundle` is the single input of the provenance assembler.
// Concrete loaders for HCL and JSON are provided in separate packages.
package config
