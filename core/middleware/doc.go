// Package middleware groups the HTTP middleware used by the serve command.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: assigns every request a ray id, stored in the Fiber locals and
//     echoed in the X-Ray-ID response header.
package middleware
