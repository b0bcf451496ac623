package admin

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	adminerrors "github.com/Bhavesh2823/Empora/internal/admin/errors"
	"github.com/Bhavesh2823/Empora/internal/shared/fieldcrypto"
)

const accessTokenTTL = time.Hour * 8

// StoreResolver turns a store name into a live handle. Satisfied by
// tenantdb.Router.
type StoreResolver interface {
	Resolve(ctx context.Context, storeName string) (*gorm.DB, error)
}

//go:generate mockgen -source=admin_service.go -destination=mock/admin_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, db *gorm.DB, id int64) (AdminResponse, error)
}

type service struct {
	resolver StoreResolver
	repo     Repository
	codec    *fieldcrypto.Codec
}

func NewService(resolver StoreResolver, repo Repository, codec *fieldcrypto.Codec) Service {
	return &service{resolver: resolver, repo: repo, codec: codec}
}

// Login authenticates against the store named in the request body. The
// caller has no token yet, so the store name travels in the request and
// ends up inside the issued token for the binder to use afterwards.
func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	db, err := s.resolver.Resolve(ctx, req.DBName)
	if err != nil {
		return LoginResponse{}, err
	}

	// Deterministic encryption makes the ciphertext a usable equality key.
	emailCiphertext, err := s.codec.Encrypt(req.Email)
	if err != nil {
		return LoginResponse{}, err
	}

	a, err := s.repo.GetByEmail(ctx, db, emailCiphertext)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, adminerrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, adminerrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(a, req.Email, req.DBName)
	if err != nil {
		return LoginResponse{}, adminerrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		AccessToken: token,
		User:        s.toResponse(a, req.DBName),
	}, nil
}

func (s *service) Me(ctx context.Context, db *gorm.DB, id int64) (AdminResponse, error) {
	a, err := s.repo.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdminResponse{}, adminerrors.ErrAdminNotFound
		}
		return AdminResponse{}, err
	}
	return s.toResponse(a, ""), nil
}

func (s *service) generateToken(a *Admin, email, dbName string) (string, error) {
	claims := jwt.MapClaims{
		"id":      strconv.FormatInt(a.ID, 10),
		"email":   email,
		"role":    a.Role,
		"db_name": dbName,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func (s *service) toResponse(a *Admin, dbName string) AdminResponse {
	return AdminResponse{
		ID:     a.ID,
		Name:   s.codec.SafeDecrypt(a.Name),
		Email:  s.codec.SafeDecrypt(a.Email),
		Role:   a.Role,
		DBName: dbName,
	}
}
