package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/floroz/gavel-auctions/internal/domain/images"
	"github.com/floroz/gavel-auctions/pkg/auth"
	"github.com/floroz/gavel-auctions/pkg/database"
	"github.com/floroz/gavel-auctions/pkg/events"
)

type Service struct {
	userRepo   UserRepository
	outboxRepo OutboxRepository
	txManager  database.TransactionManager
	imageStore images.Store
	logger     *slog.Logger
}

func NewService(
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	txManager database.TransactionManager,
	imageStore images.Store,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		txManager:  txManager,
		imageStore: imageStore,
		logger:     logger,
	}
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (int64, error) {
	if err := validateRegistration(cmd); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        strings.TrimSpace(cmd.Email),
		FirstName:    strings.TrimSpace(cmd.FirstName),
		LastName:     strings.TrimSpace(cmd.LastName),
		PasswordHash: hash,
	}

	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := s.userRepo.CreateUser(ctx, tx, user); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	event, err := events.NewOutboxEvent(events.EventTypeUserRegistered, events.UserRegistered{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return 0, err
	}
	if err := s.outboxRepo.SaveEvent(ctx, tx, event); err != nil {
		return 0, fmt.Errorf("failed to create outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID)
	return user.ID, nil
}

// Login issues a new bearer token, replacing any token the user already held.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		auth.BurnVerification(password)
		return nil, ErrInvalidCredentials
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetTokenHash(ctx, user.ID, auth.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return &LoginResult{UserID: user.ID, Token: token}, nil
}

// Logout clears the user's token. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetTokenHash(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// ResolveToken implements auth.TokenResolver.
func (s *Service) ResolveToken(ctx context.Context, token string) (int64, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	return s.userRepo.GetUserIDByTokenHash(ctx, auth.HashToken(token))
}

// GetUser returns the public profile of id. viewerID is 0 for anonymous callers.
func (s *Service) GetUser(ctx context.Context, id, viewerID int64) (*Profile, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &Profile{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName}
	if viewerID == user.ID {
		email := user.Email
		profile.Email = &email
	}
	return profile, nil
}

func (s *Service) ModifyUser(ctx context.Context, cmd ModifyUserCommand) error {
	user, err := s.findUser(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if cmd.RequesterID != user.ID {
		return ErrForbidden
	}
	if cmd.Patch.IsEmpty() {
		return ErrNoChanges
	}

	p := cmd.Patch
	if p.FirstName != nil {
		if strings.TrimSpace(*p.FirstName) == "" {
			return fmt.Errorf("%w: first name is required", ErrInvalidInput)
		}
		user.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		if strings.TrimSpace(*p.LastName) == "" {
			return fmt.Errorf("%w: last name is required", ErrInvalidInput)
		}
		user.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if !strings.Contains(email, "@") {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
		user.Email = email
	}
	if p.Password != nil {
		if *p.Password == "" {
			return fmt.Errorf("%w: password is required", ErrInvalidInput)
		}
		if cmd.CurrentPassword == nil {
			return fmt.Errorf("%w: current password is required", ErrInvalidInput)
		}
		valid, err := auth.VerifyPassword(user.PasswordHash, *cmd.CurrentPassword)
		if err != nil {
			return fmt.Errorf("failed to verify password: %w", err)
		}
		if !valid {
			return ErrIncorrectPassword
		}
		hash, err := auth.HashPassword(*p.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			return err
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User modified", "user_id", user.ID)
	return nil
}

func (s *Service) GetUserImage(ctx context.Context, id int64) (*images.Image, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ImageFilename == nil {
		return nil, images.ErrImageNotFound
	}
	return images.Load(ctx, s.imageStore, *user.ImageFilename)
}

// SetUserImage stores the user's own image and reports whether they had none before.
func (s *Service) SetUserImage(ctx context.Context, cmd SetImageCommand) (bool, error) {
	ext, err := images.ExtensionForContentType(cmd.ContentType)
	if err != nil {
		return false, err
	}
	if len(cmd.Data) == 0 {
		return false, ErrInvalidInput
	}

	user, err := s.findUser(ctx, cmd.UserID)
	if err != nil {
		return false, err
	}
	if cmd.RequesterID != user.ID {
		return false, ErrForbidden
	}

	filename := fmt.Sprintf("user_%d.%s", user.ID, ext)
	if err := s.imageStore.Put(ctx, filename, cmd.Data); err != nil {
		return false, fmt.Errorf("failed to store image: %w", err)
	}
	if err := s.userRepo.SetImageFilename(ctx, user.ID, &filename); err != nil {
		return false, fmt.Errorf("failed to set image filename: %w", err)
	}

	previous := user.ImageFilename
	if previous != nil && *previous != filename {
		s.removeImage(ctx, *previous)
	}
	return previous == nil, nil
}

// DeleteUserImage returns images.ErrImageNotFound when there is nothing to delete.
func (s *Service) DeleteUserImage(ctx context.Context, userID, requesterID int64) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if requesterID != user.ID {
		return ErrForbidden
	}
	if user.ImageFilename == nil {
		return images.ErrImageNotFound
	}

	if err := s.userRepo.SetImageFilename(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("failed to clear image filename: %w", err)
	}
	s.removeImage(ctx, *user.ImageFilename)
	return nil
}

func (s *Service) findUser(ctx context.Context, id int64) (*User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) removeImage(ctx context.Context, filename string) {
	if err := s.imageStore.Delete(ctx, filename); err != nil && !errors.Is(err, images.ErrImageNotFound) {
		s.logger.Error("Failed to remove user image", "filename", filename, "error", err)
	}
}

func validateRegistration(cmd RegisterCommand) error {
	if strings.TrimSpace(cmd.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		return errors.New("last name is required")
	}
	if !strings.Contains(cmd.Email, "@") {
		return errors.New("invalid email")
	}
	if cmd.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
