package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// El subject es el ID del usuario codificado como entero en string. Role es informativo:
// la autorización siempre re-resuelve el rol vigente desde la base (no desde el token).
type Claims struct {
	jwt.RegisteredClaims
	TenantOrgID int64  `json:"tenant_org_id,omitempty"`
	Role        string `json:"role"` // nombre del rol al momento de emisión
}

// Generate genera un token JWT firmado con subject=userID, organización y rol.
func Generate(secret string, userID, tenantOrgID int64, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		TenantOrgID: tenantOrgID,
		Role:        role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID, tenantOrgID y role.
// Retorna error si el token es inválido, expirado, con firma incorrecta
// o con subject que no es un entero.
func Parse(secret, tokenString string) (userID, tenantOrgID int64, role string, err error) {
	if secret == "" {
		return 0, 0, "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, 0, "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, 0, "", fmt.Errorf("claims inválidos")
	}
	userID, err = strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("subject no numérico: %w", err)
	}
	return userID, claims.TenantOrgID, claims.Role, nil
}
