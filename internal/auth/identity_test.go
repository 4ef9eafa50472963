package auth

import "testing"

func TestStaticProvider(t *testing.T) {
	t.Run("public mode is always ready", func(t *testing.T) {
		p := NewStaticProvider(ModePublic, "")
		if !p.Identity().Ready {
			t.Fatalf("public mode must be ready without a user id")
		}
		if p.Scope() != PublicScope {
			t.Fatalf("expected public scope, got %q", p.Scope())
		}
	})

	t.Run("user mode scopes by user id", func(t *testing.T) {
		p := NewStaticProvider(ModeUser, "user-42")
		if !p.Identity().Ready {
			t.Fatalf("user mode with an id must be ready")
		}
		if p.Scope() != "user-42" {
			t.Fatalf("expected user scope, got %q", p.Scope())
		}
	})

	t.Run("user mode without id defers", func(t *testing.T) {
		p := NewStaticProvider(ModeUser, "")
		if p.Identity().Ready {
			t.Fatalf("user mode without an id must not be ready")
		}
	})
}

func TestNewStaticProviderFromEnv(t *testing.T) {
	t.Run("defaults to public", func(t *testing.T) {
		t.Setenv("DEPLOYMENT_MODE", "")
		t.Setenv("SESSION_USER_ID", "")
		p := NewStaticProviderFromEnv()
		if p.Scope() != PublicScope {
			t.Fatalf("expected public scope, got %q", p.Scope())
		}
	})

	t.Run("user mode from env", func(t *testing.T) {
		t.Setenv("DEPLOYMENT_MODE", "user")
		t.Setenv("SESSION_USER_ID", "user-42")
		p := NewStaticProviderFromEnv()
		if p.Scope() != "user-42" {
			t.Fatalf("expected user scope, got %q", p.Scope())
		}
	})
}
