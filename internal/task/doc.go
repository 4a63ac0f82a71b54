// Package task implements background task scheduling and processing.
package task
