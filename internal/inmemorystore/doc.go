// Package inmemorystore holds the deployment a controller is currently running
// and publishes replacements atomically.
//
// # Purpose
//
// A deployment is rebuilt from scratch whenever its source document changes.
// The store makes that rebuild safe while other goroutines keep reading:
//
//   - **Build-then-publish:** A rebuild works on a private clone of the source
//     document and only publishes a fully validated deployment. A failed build
//     leaves the current revision untouched.
//   - **Lock-free reads:** Readers load the current revision through an
//     atomic pointer. Revisions are immutable, so no reader ever observes a
//     half-built model.
//
// # Concurrency Model
//
// Concurrent rebuilds are allowed; whichever finishes last wins. Each
// published revision carries a fresh UUID so consumers can tell revisions
// apart without comparing contents.
package inmemorystore
