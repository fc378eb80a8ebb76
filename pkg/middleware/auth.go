package middleware

import (
	jwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/service"
	"equipment-dashboard/pkg/utils"
)

const tokenContextKey = "user"

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtSvc, logger: logger}
}

// JWT validates the bearer token and leaves the parsed *jwt.Token under "user".
func (m *AuthMiddleware) JWT() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    m.jwtService.SecretKey(),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return new(service.SessionClaims) },
		ErrorHandler: func(c echo.Context, err error) error {
			m.logger.Debug("bearer token rejected", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		},
	})
}

// Session turns the validated claims into an authz.Session on the request context.
func (m *AuthMiddleware) Session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get(tokenContextKey).(*jwt.Token)
		if !ok || token == nil {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}
		claims, ok := token.Claims.(*service.SessionClaims)
		if !ok || claims.UserID == 0 {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		session := authz.Session{UserID: claims.UserID, Role: claims.Role, Name: claims.Name}
		c.SetRequest(c.Request().WithContext(authz.WithSession(c.Request().Context(), session)))
		return next(c)
	}
}

// RequireRole rejects sessions whose normalized role is not among roles. A mismatch is
// answered with 401, same as a missing session.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := authz.SessionFromContext(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !session.HasRole(roles...) {
				m.logger.Warn("role rejected",
					zap.Uint64("userID", session.UserID),
					zap.String("role", session.Role),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
