// Package binder decodes HTTP requests into typed structs for handler.Wrap.
//
// JSON and Form each handle one content type and return
// ErrBinderNotApplicable for anything else, so several binders can be
// stacked on one handler. Body combines both and rejects other media types
// with ErrUnsupportedMediaType. Path reads chi route parameters.
//
// Bodies are capped at MaxBodySize; larger ones fail with ErrBodyTooLarge.
package binder
