package cmd

import "testing"

func TestResolveDatabaseURL(t *testing.T) {
	t.Run("flag value wins", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env/db")

		url, err := resolveDatabaseURL("postgres://flag/db")
		if err != nil {
			t.Fatalf("resolveDatabaseURL() error = %v", err)
		}
		if url != "postgres://flag/db" {
			t.Errorf("url = %q, want flag value", url)
		}
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env/db")

		url, err := resolveDatabaseURL("")
		if err != nil {
			t.Fatalf("resolveDatabaseURL() error = %v", err)
		}
		if url != "postgres://env/db" {
			t.Errorf("url = %q, want env value", url)
		}
	})

	t.Run("unconfigured", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		if _, err := resolveDatabaseURL(""); err == nil {
			t.Fatal("expected error when no database is configured")
		}
	})
}
