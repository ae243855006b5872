// Package paging implements opaque offset cursors for list endpoints.
package paging
