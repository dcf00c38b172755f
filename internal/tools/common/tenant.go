package common

// TenantFromArgs extracts the tenant_id from request arguments.
// Every booking tool call is made on behalf of exactly one tenant, so
// an empty return means the request is malformed.
func TenantFromArgs(args map[string]interface{}) string {
	if tenantID, ok := args["tenant_id"].(string); ok {
		return tenantID
	}
	return ""
}

// StringArg returns the named string argument, or fallback when the
// argument is absent, empty, or not a string.
func StringArg(args map[string]interface{}, name, fallback string) string {
	if v, ok := args[name].(string); ok && v != "" {
		return v
	}
	return fallback
}

// IntArg returns the named integer argument, or fallback when the
// argument is absent or not a number. JSON numbers arrive as float64
// and are truncated toward zero.
func IntArg(args map[string]interface{}, name string, fallback int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
