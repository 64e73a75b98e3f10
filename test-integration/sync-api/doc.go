// Package integration runs the sync service end to end against a fake Arlo
// Auth API: scheduled and manual passes, paging, the API status flag and the
// admin API authentication.
package integration
