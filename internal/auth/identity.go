// Package auth supplies the identity the core scopes its collection by.
// There is no authentication flow here: identity comes from the deployment
// environment, and the public mode runs fully anonymous.
package auth

import (
	"log"
	"os"
	"strings"
)

// DeploymentMode selects how the service order collection is scoped.
type DeploymentMode string

const (
	// ModePublic uses a single shared scope; the anonymous identity is valid.
	ModePublic DeploymentMode = "public"
	// ModeUser scopes the collection per user id.
	ModeUser DeploymentMode = "user"
)

// PublicScope is the collection scope used in public mode.
const PublicScope = "public"

// Identity is what the sync engine needs from the auth collaborator. While
// Ready is false all subscriptions are deferred.
type Identity struct {
	UserID string
	Ready  bool
}

type Provider interface {
	Identity() Identity
	// Scope is the collection scope derived from mode and identity.
	Scope() string
}

// StaticProvider resolves identity once from the environment.
//
// Env vars:
//   - DEPLOYMENT_MODE: "public" (default) or "user"
//   - SESSION_USER_ID: required in user mode
type StaticProvider struct {
	mode     DeploymentMode
	identity Identity
}

var _ Provider = (*StaticProvider)(nil)

func NewStaticProviderFromEnv() *StaticProvider {
	mode := DeploymentMode(strings.ToLower(strings.TrimSpace(os.Getenv("DEPLOYMENT_MODE"))))
	if mode != ModeUser {
		mode = ModePublic
	}
	userID := strings.TrimSpace(os.Getenv("SESSION_USER_ID"))

	p := NewStaticProvider(mode, userID)
	if !p.identity.Ready {
		log.Printf("[auth] user mode without SESSION_USER_ID, identity not ready")
	}
	return p
}

func NewStaticProvider(mode DeploymentMode, userID string) *StaticProvider {
	ready := true
	if mode == ModeUser && userID == "" {
		ready = false
	}
	return &StaticProvider{
		mode:     mode,
		identity: Identity{UserID: userID, Ready: ready},
	}
}

func (p *StaticProvider) Identity() Identity {
	return p.identity
}

func (p *StaticProvider) Scope() string {
	if p.mode == ModeUser && p.identity.UserID != "" {
		return p.identity.UserID
	}
	return PublicScope
}
