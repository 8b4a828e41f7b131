// Package quotes fetches random quotes from a public HTTP endpoint.
//
// Client performs the request and reports every failure. BestEffortSource wraps
// a Client for the busy loop: failures are logged at debug level and surface
// only as "no quote available".
package quotes
