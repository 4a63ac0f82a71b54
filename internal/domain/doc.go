// Package domain defines the core content entities and errors.
package domain
