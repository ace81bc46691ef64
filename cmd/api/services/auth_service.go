package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"autoplay/cmd/api/auth"
	"autoplay/models"
	"autoplay/repositories"
)

// identityStore is the slice of the user repository the auth flow needs.
type identityStore interface {
	FindByIdentity(ctx context.Context, provider, providerSub string) (*models.User, error)
	UpsertIdentity(ctx context.Context, u *models.User) error
}

type AuthService struct {
	googleOAuth *auth.GoogleOAuthClient
	users       identityStore
	jwtManager  *auth.JWTManager
	redirectURL string
}

func NewAuthService(googleOAuth *auth.GoogleOAuthClient, users identityStore, jwtManager *auth.JWTManager, redirectURL string) *AuthService {
	return &AuthService{
		googleOAuth: googleOAuth,
		users:       users,
		jwtManager:  jwtManager,
		redirectURL: redirectURL,
	}
}

func NewAuthServiceFromEnv(users *repositories.UserRepository) (*AuthService, error) {
	googleClient, err := auth.NewGoogleOAuthClientFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init GoogleOAuthClient: %w", err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init JWTManager: %w", err)
	}

	redirectURL := os.Getenv("AUTH_LOGIN_SUCCESS_REDIRECT_URL")
	if redirectURL == "" {
		return nil, fmt.Errorf("AUTH_LOGIN_SUCCESS_REDIRECT_URL is blank")
	}

	return NewAuthService(googleClient, users, jwtManager, redirectURL), nil
}

func (s *AuthService) BuildGoogleLoginURL(state string) string {
	return s.googleOAuth.AuthCodeURL(state)
}

// HandleGoogleCallback exchanges the OAuth code, upserts the user row keyed
// by the Google identity and returns a signed access token. First-time
// logins get a fresh user id; repeat logins keep theirs.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (string, error) {
	token, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("google oauth exchange: %w", err)
	}

	info, err := s.googleOAuth.FetchUserInfo(ctx, token)
	if err != nil {
		return "", fmt.Errorf("google userinfo: %w", err)
	}

	u := &models.User{
		ID:          uuid.NewString(),
		Provider:    "google",
		ProviderSub: info.Sub,
		Email:       info.Email,
	}
	if err := s.users.UpsertIdentity(ctx, u); err != nil {
		return "", fmt.Errorf("user upsert: %w", err)
	}

	stored, err := s.users.FindByIdentity(ctx, "google", info.Sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("user lookup: %w", err)
	}

	accessToken, err := s.jwtManager.Sign(stored.ID)
	if err != nil {
		return "", fmt.Errorf("jwt sign: %w", err)
	}

	return accessToken, nil
}

// GetRedirectURL is the final redirect target of the OAuth flow. On success
// the token is appended with GetRedirectURLWithToken; on failure the client
// is sent there without a token.
func (s *AuthService) GetRedirectURL() string {
	return s.redirectURL
}

func (s *AuthService) GetRedirectURLWithToken(token string) string {
	return fmt.Sprintf("%s?token=%s", s.redirectURL, token)
}

func (s *AuthService) ParseAccessToken(token string) (string, error) {
	return s.jwtManager.Parse(token)
}
