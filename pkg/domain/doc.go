// Package domain contains the registry record types that flow through the
// lookup pipeline: the open-ended upstream Record and the fixed-shape
// PublicRecord returned to callers.
package domain
