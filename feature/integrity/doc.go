// Package integrity provides health checks for the tracker's infrastructure.
//
// # Checks Provided
//
//   - Server: Validates that the connected database has every tracker table
//     with the columns the models declare.
//   - Storage: Checks that the report archive bucket exists and counts the
//     archived reports. Supports creating the bucket.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/server : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
