// Package handler implements HTTP request handlers for the socialfeed API.
//
// # Handlers
//
// PostHandler serves posts and their comments. Writes go through the
// publication rules in service.PostService; reads return paged listings.
//
// UserHandler serves the user directory.
//
// Middleware provides panic recovery, request logging with request ids,
// CORS, per-client rate limiting and optional bearer-token authentication.
//
// # Response Format
//
// Success responses wrap the payload as {"data": ...}. Listings add
// {"meta": {...}} with totalCount, pageSize, currentPage, totalPages,
// hasNextPage, hasPreviousPage and, where they exist, nextPageUrl and
// previousPageUrl. The same metadata is repeated in the X-Pagination header.
//
// Error responses return JSON with {error, details} structure:
//   - 400 for malformed input, rejected publication rules and bad page parameters
//   - 401 when authentication is enabled and the bearer token is missing or invalid
//   - 404 for unknown posts and users
//   - 429 when a client exceeds its request rate
//   - 500 for storage failures
//
// # Server-Sent Events
//
// The /events endpoint streams post_created, post_updated, post_deleted and
// user_created events.
package handler
