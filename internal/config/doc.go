// Package config defines the format-agnostic configuration model for
// causalcore and the Loader interface that produces it.
//
// The Model is the single source of truth for the app package: which event
// stream to subscribe to, how to export traces, where seed facts live, and
// which facts to preload. Concrete loaders, such as the HCL one, live in
// separate packages and only translate their syntax into this model.
package config
