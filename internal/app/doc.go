// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle: register builtin
// model modules, load HCL definitions, build and validate classes,
// construct the document, then either print it or serve the change stream.
package app
