package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"real-time-messenger/apperror"
	"real-time-messenger/config/logger"
	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
	"real-time-messenger/entity"
	"real-time-messenger/repository"
)

const searchLimit = 20

type UserUsecaseImpl struct {
	*repository.UserRepository
	*repository.BlockRepository
	*validator.Validate
	*gorm.DB
	Log *logger.AppLogger
}

func NewUserUsecase(userRepository *repository.UserRepository, blockRepository *repository.BlockRepository, validate *validator.Validate, DB *gorm.DB, logger *logger.AppLogger) UserUsecase {
	return &UserUsecaseImpl{UserRepository: userRepository, BlockRepository: blockRepository, Validate: validate, DB: DB, Log: logger}
}

func (uc *UserUsecaseImpl) GetUserByID(ctx context.Context, userID string) (res.UserResponse, error) {
	uc.Log.Http.Info.Info().Msg("GetUserByID started")
	uc.Log.Http.Trace.Trace().
		Str("userId", userID).
		Msg("Finding user by ID")

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return res.UserResponse{}, err
	}

	uc.Log.Http.Info.Info().
		Str("userId", user.ID).
		Str("userName", user.Username).
		Msg("Successfully retrieved user")

	return toUserResponse(user), nil
}

func (uc *UserUsecaseImpl) GetAllUser(ctx context.Context, userID string) ([]res.UserResponse, error) {
	uc.Log.Http.Info.Info().Msg("GetAllUser started")

	users, err := uc.UserRepository.ListExcept(ctx, uc.DB, userID)
	if err != nil {
		uc.Log.Http.Error.Error().
			Err(err).
			Msg("Failed to get all users")
		return nil, apperror.Internal(err)
	}

	uc.Log.Http.Trace.Trace().
		Int("userCount", len(users)).
		Msg("Mapping user entities to responses")

	return toUserResponses(users), nil
}

func (uc *UserUsecaseImpl) SearchUsers(ctx context.Context, userID, query string) ([]res.UserResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []res.UserResponse{}, nil
	}

	users, err := uc.UserRepository.Search(ctx, uc.DB, userID, query, searchLimit)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("query", query).Msg("Failed to search users")
		return nil, apperror.Internal(err)
	}

	uc.Log.Http.Trace.Trace().
		Str("query", query).
		Int("userCount", len(users)).
		Msg("User search finished")
	return toUserResponses(users), nil
}

func (uc *UserUsecaseImpl) UpdateProfile(ctx context.Context, userID string, request *req.EditProfileRequest) (res.UserResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Str("userId", userID).Msg("Invalid profile update")
		return res.UserResponse{}, validationError(err)
	}
	if _, err := uc.findUser(ctx, userID); err != nil {
		return res.UserResponse{}, err
	}

	name := strings.TrimSpace(request.DisplayName)
	if err := uc.UserRepository.UpdateProfile(ctx, uc.DB, userID, name, strings.TrimSpace(request.Bio)); err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Msg("Failed to update profile")
		return res.UserResponse{}, apperror.Internal(err)
	}

	uc.Log.Http.Info.Info().Str("userId", userID).Msg("Profile updated")
	return uc.GetUserByID(ctx, userID)
}

func (uc *UserUsecaseImpl) UpdateAvatar(ctx context.Context, userID, avatarURL string) (res.UserResponse, error) {
	if _, err := uc.findUser(ctx, userID); err != nil {
		return res.UserResponse{}, err
	}
	if err := uc.UserRepository.UpdateAvatar(ctx, uc.DB, userID, avatarURL); err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Msg("Failed to update avatar")
		return res.UserResponse{}, apperror.Internal(err)
	}

	uc.Log.Http.Info.Info().Str("userId", userID).Str("avatar", avatarURL).Msg("Avatar updated")
	return uc.GetUserByID(ctx, userID)
}

// BlockUser records that userID blocked targetID. Blocks are informational to clients.
func (uc *UserUsecaseImpl) BlockUser(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return apperror.ErrSelfBlock
	}
	if _, err := uc.findUser(ctx, targetID); err != nil {
		return err
	}

	added, err := uc.BlockRepository.Block(ctx, uc.DB, userID, targetID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Str("targetId", targetID).Msg("Failed to block user")
		return apperror.Internal(err)
	}
	if !added {
		return apperror.ErrAlreadyBlocked
	}

	uc.Log.Http.Info.Info().Str("userId", userID).Str("targetId", targetID).Msg("User blocked")
	return nil
}

func (uc *UserUsecaseImpl) UnblockUser(ctx context.Context, userID, targetID string) error {
	if err := uc.BlockRepository.Unblock(ctx, uc.DB, userID, targetID); err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Str("targetId", targetID).Msg("Failed to unblock user")
		return apperror.Internal(err)
	}
	uc.Log.Http.Info.Info().Str("userId", userID).Str("targetId", targetID).Msg("User unblocked")
	return nil
}

func (uc *UserUsecaseImpl) BlockStatus(ctx context.Context, userID, targetID string) (res.BlockStatusResponse, error) {
	blocked, err := uc.BlockRepository.IsBlocked(ctx, uc.DB, userID, targetID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Msg("Failed to read block status")
		return res.BlockStatusResponse{}, apperror.Internal(err)
	}
	return res.BlockStatusResponse{IsBlocked: blocked}, nil
}

func (uc *UserUsecaseImpl) GetBlockedUsers(ctx context.Context, userID string) ([]res.UserResponse, error) {
	users, err := uc.BlockRepository.FindBlockedUsers(ctx, uc.DB, userID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Str("userId", userID).Msg("Failed to list blocked users")
		return nil, apperror.Internal(err)
	}
	return toUserResponses(users), nil
}

func (uc *UserUsecaseImpl) findUser(ctx context.Context, userID string) (entity.User, error) {
	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, userID); err != nil {
		if repository.IsNotFound(err) {
			uc.Log.Http.Warning.Warn().
				Str("userId", userID).
				Msg("User not found")
			return user, apperror.ErrUserNotFound
		}
		uc.Log.Http.Error.Error().
			Err(err).
			Str("userId", userID).
			Msg("Failed to find user")
		return user, apperror.Internal(err)
	}
	return user, nil
}
