// Package utils provides small helpers shared by the features: loose value
// conversion for query parameters and file helpers for backups and source scans.
package utils
