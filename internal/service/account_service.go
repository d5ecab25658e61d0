// Package service provides application business logic (accounts, posts, communities, chat).
package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"homiee/internal/config"
	"homiee/internal/models"
	"homiee/internal/repository"
	"homiee/internal/validation"
)

// AccountService handles signup and login.
type AccountService struct {
	userRepo      repository.UserRepository
	communityRepo repository.CommunityRepository
	config        *config.Config
}

// SignupInput is the input for creating an account.
type SignupInput struct {
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Password  string
	Hobbies   []string
}

// LoginResult is returned after successful authentication.
type LoginResult struct {
	Token       string            `json:"token"`
	Email       string            `json:"email"`
	UserName    string            `json:"userName"`
	Hobbies     models.StringList `json:"hobbies"`
	Communities models.StringList `json:"communities"`
}

// NewAccountService returns a new AccountService.
func NewAccountService(userRepo repository.UserRepository, communityRepo repository.CommunityRepository, cfg *config.Config) *AccountService {
	return &AccountService{userRepo: userRepo, communityRepo: communityRepo, config: cfg}
}

// Signup validates the input, hashes the password, derives the initial
// community membership from the hobby list, and persists the account.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.UserName == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("All fields are required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validation.ValidateUserName(in.UserName); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	communities, err := s.matchCommunitiesByName(ctx, in.Hobbies)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		UserName:    in.UserName,
		Email:       in.Email,
		Password:    string(hashed),
		Hobbies:     models.StringList(in.Hobbies),
		Communities: communities,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates the user and refreshes their community membership cache.
// The stored membership is only rewritten when the recomputed list differs in
// length from the stored one.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundMessage("User not found")
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, models.NewAuthError("Invalid credentials")
	}

	communities, err := s.matchCommunitiesByName(ctx, user.Hobbies)
	if err != nil {
		return nil, err
	}
	if len(communities) != len(user.Communities) {
		if err := s.userRepo.SaveCommunities(ctx, user.Email, communities); err != nil {
			return nil, err
		}
		user.Communities = communities
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &LoginResult{
		Token:       token,
		Email:       user.Email,
		UserName:    user.UserName,
		Hobbies:     user.Hobbies,
		Communities: user.Communities,
	}, nil
}

// matchCommunitiesByName resolves hobby strings to community names by exact,
// case sensitive name match.
func (s *AccountService) matchCommunitiesByName(ctx context.Context, hobbies []string) (models.StringList, error) {
	matched, err := s.communityRepo.ByNames(ctx, hobbies)
	if err != nil {
		return nil, err
	}
	names := make(models.StringList, 0, len(matched))
	for _, c := range matched {
		names = append(names, c.Name)
	}
	return names, nil
}

func (s *AccountService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"iss":    "homiee-api",
		"aud":    "homiee-client",
		"iat":    now.Unix(),
		"exp":    now.Add(time.Hour).Unix(),
		"jti":    uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
