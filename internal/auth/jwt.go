package auth

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenTTL is how long an admin session lasts.
const TokenTTL = 12 * time.Hour

// Authenticator checks the single admin account and signs session tokens.
type Authenticator struct {
	secret       []byte
	user         string
	passwordHash string
}

// New builds an Authenticator for the admin account. passwordHash is a
// bcrypt hash. When secret is empty a random one is used, so sessions
// do not survive a restart.
func New(secret, user, passwordHash string) *Authenticator {
	if secret == "" {
		log.Println("WARNING: JWT_SECRET is not set. Using a random secret; sessions end on restart.")
		secret = uuid.NewString()
	}
	return &Authenticator{
		secret:       []byte(secret),
		user:         user,
		passwordHash: passwordHash,
	}
}

// Login checks the credentials and returns a signed token.
func (a *Authenticator) Login(user, password string) (string, error) {
	if user != a.user {
		return "", ErrInvalidCredentials
	}
	err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return a.GenerateToken(user)
}

// GenerateToken creates a JWT whose subject is the admin username.
func (a *Authenticator) GenerateToken(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(TokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateToken parses and validates a token string and returns its subject.
func (a *Authenticator) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Only accept the algorithm we sign with.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	subject, err := claims.GetSubject()
	if err != nil || subject != a.user {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// HashPassword produces the bcrypt hash expected in ADMIN_PASSWORD_HASH.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
