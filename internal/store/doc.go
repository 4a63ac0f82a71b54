// Package store provides abstractions and interfaces for data persistence.
package store
