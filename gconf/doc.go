/*
Package gconf provides a toolset for managing an extension configuration.

Each extension can store exactly one configuration instance as a singleton
under a well known key. Configuration is created during genesis and can be
updated at runtime through an update message gated by the configuration
owner. Updates are patches: only non-zero fields of the payload overwrite
the stored state.
*/
package gconf
