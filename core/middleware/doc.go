// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - Auth: Implements HTTP Basic authentication against the credential table
//     and answers every failure with the same challenge.
//
// RayID must be registered first so that authentication failures can be
// correlated with the request that caused them.
package middleware
