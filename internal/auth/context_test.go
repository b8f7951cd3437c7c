package auth

import (
	"context"
	"testing"
)

func TestWithAuthAndFromContext(t *testing.T) {
	ac := AuthContext{
		Email: "sam@example.com",
		Role:  RoleAdmin,
		Tier:  TierFree,
	}

	ctx := WithAuth(context.Background(), ac)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected AuthContext in context")
	}
	if got.Email != "sam@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "sam@example.com")
	}
	if got.Role != RoleAdmin {
		t.Errorf("Role = %q, want %q", got.Role, RoleAdmin)
	}
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	if ok {
		t.Error("expected false for missing AuthContext")
	}
	if Email(context.Background()) != "" {
		t.Error("expected empty email for missing AuthContext")
	}
}

func TestIsAdmin(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{Role: RoleAdmin})
	if !IsAdmin(ctx) {
		t.Error("expected IsAdmin to return true")
	}
	ctx = WithAuth(context.Background(), AuthContext{Role: RoleUser})
	if IsAdmin(ctx) {
		t.Error("expected IsAdmin to return false for user role")
	}
	if IsAdmin(context.Background()) {
		t.Error("expected IsAdmin to return false for missing context")
	}
}

func TestIsPremium(t *testing.T) {
	tests := []struct {
		name string
		ac   AuthContext
		want bool
	}{
		{"premium tier", AuthContext{Role: RoleUser, Tier: TierPremium}, true},
		{"free tier", AuthContext{Role: RoleUser, Tier: TierFree}, false},
		{"admin", AuthContext{Role: RoleAdmin, Tier: TierFree}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPremium(WithAuth(context.Background(), tt.ac)); got != tt.want {
				t.Errorf("IsPremium = %v, want %v", got, tt.want)
			}
		})
	}
}
