// Package resources provides MCP resources describing server state.
// Resources are read-only data sources that MCP clients can fetch, such
// as the list of connected tenants and the scheduling defaults.
//
// Resource payloads never include credential material. Token state is
// summarized as a health label instead.
package resources
