package superuser

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	superusererrors "github.com/Bhavesh2823/Empora/internal/superuser/errors"
)

const (
	RoleSuperuser  = "superuser"
	accessTokenTTL = time.Hour * 8
)

//go:generate mockgen -source=superuser_service.go -destination=mock/superuser_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (SuperuserResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetAll(ctx context.Context) ([]SuperuserResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (SuperuserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return SuperuserResponse{}, err
	}

	su := &Superuser{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}

	if err := s.repo.Create(ctx, su); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return SuperuserResponse{}, superusererrors.ErrEmailAlreadyRegistered
		}
		return SuperuserResponse{}, err
	}

	return toResponse(su), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	su, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return LoginResponse{}, superusererrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(su.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, superusererrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(su)
	if err != nil {
		return LoginResponse{}, superusererrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		AccessToken: token,
		User:        toResponse(su),
	}, nil
}

func (s *service) GetAll(ctx context.Context) ([]SuperuserResponse, error) {
	sus, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]SuperuserResponse, 0, len(sus))
	for i := range sus {
		out = append(out, toResponse(&sus[i]))
	}
	return out, nil
}

// Superuser tokens deliberately carry no db_name claim: they identify a
// platform operator, not a tenant, so the tenant binder rejects them.
func (s *service) generateToken(su *Superuser) (string, error) {
	claims := jwt.MapClaims{
		"id":    su.ID.String(),
		"email": su.Email,
		"role":  RoleSuperuser,
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func toResponse(su *Superuser) SuperuserResponse {
	return SuperuserResponse{
		ID:    su.ID.String(),
		Name:  su.Name,
		Email: su.Email,
		Role:  RoleSuperuser,
	}
}
