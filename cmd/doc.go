// Package cmd implements the command-line interface for bookline.
//
// This package provides the following commands:
//   - serve: Start the MCP server that exposes booking tools over stdio
//   - migrate: Apply or inspect the database schema migrations
//   - connect: Run the Google OAuth flow and store a tenant's calendar connection
//   - disconnect: Deactivate a tenant's calendar connection
//   - check: Report the health of a tenant's connection
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
