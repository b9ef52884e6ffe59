package httpapi

import "testing"

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB on zero, got %d", maxBodyBytes)
	}
}

func TestSetMaxBodyBytes_PositiveSetsValue(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(1234)
	if maxBodyBytes != 1234 {
		t.Fatalf("expected 1234, got %d", maxBodyBytes)
	}
}

func TestSetCORSOptions_EmptyListsUseDefaults(t *testing.T) {
	defer SetCORSOptions(true, nil, nil, nil)
	SetCORSOptions(true, []string{"http://a.local"}, nil, nil)
	if len(corsAllowedOrigins) != 1 || corsAllowedOrigins[0] != "http://a.local" {
		t.Fatalf("origins=%v", corsAllowedOrigins)
	}
	if len(corsAllowedMethods) != len(defaultCORSMethods) {
		t.Fatalf("methods=%v", corsAllowedMethods)
	}
}
