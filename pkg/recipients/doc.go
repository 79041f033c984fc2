// Package recipients answers "who gets this notification" queries against
// the compact/jurisdiction configuration store.
//
// Two implementations of Source exist: RedisSource over the shared key-value
// store the admin UI maintains, and FileSource over a local YAML fixture for
// development. Both return empty lists for unconfigured targets; the
// notification layer decides that an empty list is a configuration error
// rather than a reason to skip silently.
package recipients
