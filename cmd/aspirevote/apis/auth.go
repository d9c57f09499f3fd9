package apis

import (
	"errors"
	"net/http"
	"strings"

	"aspirevote-backend/cmd/aspirevote/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

var (
	errMissingAuthorization = errors.New("missing Authorization header")
	errInvalidAuthorization = errors.New("invalid Authorization format")
	errInvalidToken         = errors.New("invalid token")
	errTokenExpired         = errors.New("token expired")
)

// Claims carried by access tokens. Tokens are issued elsewhere; only the role
// is read here.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// BearerAuth validates an HS256 bearer token and stores the caller's session
// on the request context.
func BearerAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return unauthorized(c, err)
			}

			claims, err := parseToken(token, secret)
			if err != nil {
				return unauthorized(c, err)
			}

			c.Set(sessionKey, model.Session{
				Role:  model.Role(claims.Role),
				Token: token,
			})
			return next(c)
		}
	}
}

// RequireAdmin rejects participants. It must run after BearerAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !SessionFrom(c).Role.IsAdmin() {
			return c.JSON(
				http.StatusForbidden,
				model.BaseResponse{
					Message: "admin role required",
				},
			)
		}
		return next(c)
	}
}

func SessionFrom(c echo.Context) model.Session {
	session, _ := c.Get(sessionKey).(model.Session)
	return session
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuthorization
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errInvalidAuthorization
	}
	return parts[1], nil
}

func parseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errInvalidToken
	}
	return claims, nil
}

func unauthorized(c echo.Context, err error) error {
	return c.JSON(
		http.StatusUnauthorized,
		model.BaseResponse{
			Message: err.Error(),
		},
	)
}
