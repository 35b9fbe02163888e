package tokens

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrNoEmail      = errors.New("token has no email")
)

// OwnerClaims данные токена владельца ссылок.
type OwnerClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateOwnerJWT создает токен владельца.
//
// Параметры:
//   - email: почта владельца, она же subject токена
//   - expire: срок действия токена
//   - key: ключ для подписи токена
//
// Возвращает:
//   - string: сгенерированный JWT токен
//   - error: ошибка генерации токена
func GenerateOwnerJWT(email string, expire time.Duration, key []byte) (string, error) {
	now := time.Now()
	claims := OwnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
		Email: email,
	}
	token, err := generateJWT(claims, key)
	if err != nil {
		return "", fmt.Errorf("generating owner jwt token: %w", err)
	}
	return token, nil
}

// ValidateOwnerJWT проверяет подпись и срок действия токена и возвращает почту владельца.
//
// Параметры:
//   - tokenString: JWT токен в виде строки
//   - key: ключ для проверки подписи
//
// Возвращает:
//   - string: почта владельца
//   - error: ошибка проверки (ErrTokenExpired если истек срок действия)
func ValidateOwnerJWT(tokenString string, key []byte) (string, error) {
	token, err := validateJWT(tokenString, new(OwnerClaims), key)
	if err != nil {
		return "", fmt.Errorf("validating owner jwt token: %w", err)
	}

	claims, ok := token.Claims.(*OwnerClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	return claims.Owner()
}

// ParseOwnerUnverified читает почту из токена без проверки подписи. Годится только для показа пользователю.
func ParseOwnerUnverified(tokenString string) (*OwnerClaims, error) {
	var claims OwnerClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return nil, errors.Wrap(err, "parsing jwt token")
	}
	if _, err := claims.Owner(); err != nil {
		return nil, err
	}
	return &claims, nil
}

// BearerToken вытаскивает токен из значения заголовка Authorization.
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// Owner почта владельца: поле email, иначе subject.
func (c *OwnerClaims) Owner() (string, error) {
	if c.Email != "" {
		return c.Email, nil
	}
	if c.Subject != "" {
		return c.Subject, nil
	}
	return "", ErrNoEmail
}

func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %w", err)
	}

	return tokenString, nil
}

func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing jwt token: %w", err)
	}
	return token, nil
}
