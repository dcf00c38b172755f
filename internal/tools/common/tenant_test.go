package common

import "testing"

func TestTenantFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "present",
			args: map[string]interface{}{"tenant_id": "tenant-1"},
			want: "tenant-1",
		},
		{
			name: "missing",
			args: map[string]interface{}{},
			want: "",
		},
		{
			name: "wrong type",
			args: map[string]interface{}{"tenant_id": 42},
			want: "",
		},
		{
			name: "nil args",
			args: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TenantFromArgs(tt.args); got != tt.want {
				t.Errorf("TenantFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{
		"date_from": "2026-03-02",
		"empty":     "",
		"number":    3.0,
	}

	if got := StringArg(args, "date_from", "fallback"); got != "2026-03-02" {
		t.Errorf("StringArg(date_from) = %q, want %q", got, "2026-03-02")
	}
	if got := StringArg(args, "empty", "fallback"); got != "fallback" {
		t.Errorf("StringArg(empty) = %q, want fallback", got)
	}
	if got := StringArg(args, "number", "fallback"); got != "fallback" {
		t.Errorf("StringArg(number) = %q, want fallback", got)
	}
	if got := StringArg(args, "absent", "fallback"); got != "fallback" {
		t.Errorf("StringArg(absent) = %q, want fallback", got)
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{
		"days":    7.0, // JSON numbers decode as float64
		"exact":   3,
		"invalid": "seven",
	}

	if got := IntArg(args, "days", 14); got != 7 {
		t.Errorf("IntArg(days) = %d, want 7", got)
	}
	if got := IntArg(args, "exact", 14); got != 3 {
		t.Errorf("IntArg(exact) = %d, want 3", got)
	}
	if got := IntArg(args, "invalid", 14); got != 14 {
		t.Errorf("IntArg(invalid) = %d, want 14", got)
	}
	if got := IntArg(args, "absent", 14); got != 14 {
		t.Errorf("IntArg(absent) = %d, want 14", got)
	}
}
