// Package hcl provides the concrete HCL implementation for the definition
// loading and expression evaluation interfaces defined in the `config`
// package. It is responsible for all file parsing, HCL-to-model
// translation, and type-expression parsing.
package hcl
