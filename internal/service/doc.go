// Package service implements business logic for the socialfeed application.
//
// Services coordinate between the HTTP handlers (and the CLI) and the
// repository layer. Every operation opens its own unit of work, defers its
// rollback, and commits only when all rules have passed, so a rejected or
// failed request never leaves staged or durable state behind.
//
// # Services
//
// PostService is the publication rule engine. InsertPost checks, in order,
// that the author exists, that the author is not inside the posting cooldown,
// and that the description contains no banned term, then stamps the creation
// time and commits. Listing reads every post, filters in memory and hands the
// result to the pagination engine.
//
// UserService manages feed members. It validates column bounds itself because
// the CLI calls it without going through the HTTP boundary.
//
// # Event System
//
// Successful writes publish events via EventBus (post_created, post_updated,
// post_deleted, user_created). The SSE hub relays them to connected clients.
//
// # Configuration
//
// Rule thresholds and page defaults arrive as PublicationPolicy and
// PageDefaults values at construction; nothing is read from globals.
package service
