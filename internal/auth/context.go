package auth

import "context"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	TierFree    = "free"
	TierPremium = "premium"
)

type contextKey struct{}

type AuthContext struct {
	Email string
	Role  string
	Tier  string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func Email(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.Email
}

func IsAdmin(ctx context.Context) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ac.Role == RoleAdmin
}

// IsPremium reports whether the caller's own tier is premium. Admins count
// as premium.
func IsPremium(ctx context.Context) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ac.Tier == TierPremium || ac.Role == RoleAdmin
}
