// Package cli provides the interactive LearningX command-line client.
//
// It wires configuration, local storage, the API client, the session store,
// and an interactive REPL. Typical flow: restore a persisted session, then
// execute user commands.
//
// Key features:
//   - Register / Login / Logout, plus the delegated-auth session exchange
//   - Browse the course catalog and inspect single courses
//   - Enroll and review enrollments with progress
//   - Create courses interactively
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
