package usecase

import (
	"fmt"
	"io"
	"strings"

	"skillstream/internal/entity"
	"skillstream/internal/repo/persistent"
	"skillstream/pkg/jwt"
	"skillstream/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleStudent = "student"
	RoleCreator = "creator"
)

type AccountUseCase interface {
	Register(email, username, password string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, bio *string) (*entity.User, error)
	UploadAvatar(userID string, fileReader io.Reader, filename, contentType string) (*entity.User, error)
	Stats(userID string) (*entity.AccountStats, error)
}

type accountUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	storage    MediaStorage
	logger     *logger.Logger
}

func NewAccountUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	storage MediaStorage,
	logger *logger.Logger,
) AccountUseCase {
	return &accountUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		storage:    storage,
		logger:     logger,
	}
}

// RoleOf maps the creator flag to the token role.
func RoleOf(user *entity.User) string {
	if user.IsCreator {
		return RoleCreator
	}
	return RoleStudent
}

func (uc *accountUseCase) Register(email, username, password string) (*entity.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: valid email is required", entity.ErrValidation)
	}
	if username == "" {
		return nil, "", fmt.Errorf("%w: username is required", entity.ErrValidation)
	}
	if len(password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", entity.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:     email,
		Username:  username,
		Password:  string(hashedPassword),
		IsStudent: true,
	}

	// The unique indexes on email and username are the authority here; a
	// duplicate insert surfaces as ErrConflict even when two registrations
	// race.
	if err := uc.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := uc.jwtService.GenerateToken(user.ID, RoleOf(user))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *accountUseCase) Login(email, password string) (*entity.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", entity.ErrPermission)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", entity.ErrPermission)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, RoleOf(user))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *accountUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *accountUseCase) UpdateProfile(userID string, bio *string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if bio != nil {
		user.Bio = *bio
	}

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *accountUseCase) UploadAvatar(userID string, fileReader io.Reader, filename, contentType string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}

	fileKey := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), fileExtension(filename))
	avatarURL, err := uc.storage.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar")
	}

	user.AvatarURL = avatarURL
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *accountUseCase) Stats(userID string) (*entity.AccountStats, error) {
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return uc.userRepo.Stats(userID)
}

func fileExtension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[idx:]
	}
	return ""
}
