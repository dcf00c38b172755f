// Package common provides shared utilities for MCP tool implementations:
// argument extraction (every booking tool carries a tenant_id) and
// handler wrappers that add metrics and audit logging.
package common
