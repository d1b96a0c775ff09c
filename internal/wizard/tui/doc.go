// Package tui implements the interactive server configuration wizard.
//
// The wizard is built with Bubble Tea's model-update-view architecture. Its
// single screen, FormModel, holds two URL fields (homeserver and identity
// server) that are validated asynchronously against client autodiscovery
// whenever a field settles after losing focus.
//
// # Validation lifecycle
//
// Each field carries a settle-timer generation counter: editing or blurring
// a field bumps its generation, and a timer whose generation no longer
// matches when it fires is ignored. This is what debounces rapid focus
// changes into a single validation.
//
// Validation attempts are numbered the same way. Every trigger increments
// the attempt counter and the result message carries the attempt it belongs
// to; a result whose attempt is no longer current is discarded, so a slow
// response can never overwrite the outcome of a newer check.
//
// Entering the built-in default server pair exactly short-circuits the
// network: the default configuration is adopted synchronously with no
// spinner and no request.
//
// # Submit flow
//
// Confirming the form cancels pending settle timers and runs one fresh
// validation with the submit flag armed. On success the configuration is
// persisted and the program quits; on failure the error is shown and the
// user stays on the form.
package tui
