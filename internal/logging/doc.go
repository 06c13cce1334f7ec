// Package logging provides slog helpers for consistent structured logging
// across the application: shared attribute keys, attribute constructors, and
// PII-safe hashing for patient contact details.
package logging
