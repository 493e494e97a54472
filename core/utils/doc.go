// Package utils provides small helpers shared across the follower tracker:
// platform id parsing and formatting, slice chunking for batched API and SQL
// calls, and lenient query value conversion.
package utils
