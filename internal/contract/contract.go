// Package contract holds configuration, shared interfaces and small
// utilities used across the command, query and export layers.
package contract
