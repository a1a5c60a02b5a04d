// Package config defines the format-agnostic definition model for the
// application, along with the core interfaces (Loader, Evaluator) for
// loading model-class and instance definitions from various sources.
//
// The `config.Model` is the single source of truth for the `registry` and
// `document` packages. Concrete implementations of the interfaces, such as
// for HCL, are provided in separate packages.
package config
