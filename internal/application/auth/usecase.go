package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mnsts/ims-api/internal/application/dto"
	"github.com/mnsts/ims-api/internal/domain"
	"github.com/mnsts/ims-api/internal/domain/entity"
	"github.com/mnsts/ims-api/internal/domain/repository"
	"github.com/mnsts/ims-api/pkg/jwt"
)

const minPasswordLength = 8

// AuthUseCase registro, login y perfil. El hash de contraseña nunca sale
// de este paquete.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	jwtMinutes int
}

func NewAuthUseCase(userRepo repository.UserRepository, jwtSecret, jwtIssuer string, jwtMinutes int) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		jwtMinutes: jwtMinutes,
	}
}

// Register crea un usuario con contraseña hasheada (bcrypt). El rol por
// defecto es staff; admin debe pedirse explícitamente.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if role != entity.RoleAdmin && role != entity.RoleStaff {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := dto.UserToResponse(user)
	return &resp, nil
}

// Login verifica credenciales y emite el token de sesión.
// Credenciales incorrectas y email inexistente devuelven el mismo error.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Role, uc.jwtIssuer, uc.jwtMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.UserToResponse(user)}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.UserToResponse(user)
	return &resp, nil
}
