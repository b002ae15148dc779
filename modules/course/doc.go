// Package course implements the /api/courses resource.
//
// MongoStore keeps courses in the "courses" collection and resolves its
// database through the connection supervisor on every call, so requests made
// before MongoDB is reachable wait up to the supervisor's buffer timeout and
// then fail with 503. CachedStore adds an optional Redis read-through cache
// for single course lookups.
//
// Request bodies are not validated. Slugs are derived from titles and are
// never accepted from clients.
package course
