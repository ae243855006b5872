// Package registry provides the job registries: an in-process map, a Redis
// store shared between processes and a durable SQL store.
package registry
