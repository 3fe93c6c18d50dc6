// Package app contains the core application logic: it loads a controller
// deployment document, builds and publishes the deployment definition, prints
// it, and optionally keeps serving it over HTTP. It is decoupled from any
// specific entrypoint like a CLI.
package app
