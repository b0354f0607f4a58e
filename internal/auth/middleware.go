package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/observability"
	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

const bearerPrefix = "Bearer "

type principalKey struct{}

// Principal represents the authenticated caller for the duration of one request.
type Principal struct {
	Email       string
	User        *domain.User
	Authorities []string
}

// HasAuthority reports whether the principal was granted the authority label.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// WithPrincipal returns a copy of ctx carrying the principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// AuthMiddleware binds a principal to the request context when a valid bearer
// token is presented. It never rejects a request on token grounds; guards
// further down the pipeline decide whether identity is required.
type AuthMiddleware struct {
	tokens  *TokenCodec
	users   UserLookup
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenCodec, users UserLookup, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger, metrics: metrics}
}

// Handle runs once per request and always hands off to the next handler unless
// the user lookup for a decoded subject fails.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		m.logger.Debug("authorization header missing or not bearer", zap.String("path", c.Path()))
		m.metrics.RecordAuthOutcome(observability.AuthOutcomeNoToken)
		return c.Next()
	}
	token := authHeader[len(bearerPrefix):]

	claims, err := m.tokens.Decode(token)
	if err != nil {
		outcome := observability.AuthOutcomeMalformed
		if errors.Is(err, ErrExpiredToken) {
			outcome = observability.AuthOutcomeExpired
		}
		m.logger.Debug("bearer token rejected", zap.String("reason", outcome), zap.Error(err))
		m.metrics.RecordAuthOutcome(outcome)
		return c.Next()
	}

	ctx := c.UserContext()
	if _, bound := PrincipalFromContext(ctx); bound {
		return c.Next()
	}

	user, err := m.users.GetByEmail(ctx, claims.Email())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	if !m.tokens.Validate(token, user.Email) {
		m.logger.Debug("bearer token subject mismatch", zap.String("subject", claims.Email()))
		m.metrics.RecordAuthOutcome(observability.AuthOutcomeRejected)
		return c.Next()
	}

	principal := &Principal{
		Email:       user.Email,
		User:        user,
		Authorities: domain.Authorities(user.Roles),
	}
	c.SetUserContext(WithPrincipal(ctx, principal))
	m.logger.Debug("principal bound",
		zap.String("user_id", user.ID),
		zap.Time("issued_at", claims.Issued()),
		zap.Time("expires_at", claims.Expiry()),
	)
	m.metrics.RecordAuthOutcome(observability.AuthOutcomeAuthenticated)
	return c.Next()
}
