package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"real-time-messenger/apperror"
	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
	"real-time-messenger/entity"
	"real-time-messenger/repository"
	"real-time-messenger/security"
	auth "real-time-messenger/util"
)

type AuthUsecaseImpl struct {
	*repository.AuthRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
	*security.JWT
}

func NewAuthUsecase(authRepository *repository.AuthRepository, validate *validator.Validate, DB *gorm.DB, logger *logrus.Logger, JWT *security.JWT) AuthUsecase {
	return &AuthUsecaseImpl{AuthRepository: authRepository, Validate: validate, DB: DB, Logger: logger, JWT: JWT}
}

func (uc *AuthUsecaseImpl) LoginUser(ctx context.Context, req *req.LoginRequest) (res.LoginResponse, error) {
	uc.Logger.Infof("Login attempt for %s", req.Username)

	// validate request
	if err := uc.Validate.Struct(req); err != nil {
		uc.Logger.WithError(err).Errorf("failed to validete request : %v", err)
		return res.LoginResponse{}, validationError(err)
	}

	// find BY Username
	currentAccount, err := uc.AuthRepository.FindByUsername(ctx, uc.DB, req.Username)
	if repository.IsNotFound(err) {
		uc.Logger.Warnf("Unknown username %s", req.Username)
		return res.LoginResponse{}, apperror.ErrInvalidCredentials
	}
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to find username = %v", err)
		return res.LoginResponse{}, apperror.Internal(err)
	}
	// compare the password
	if matchPassword := auth.ComparePassword(currentAccount.Password, req.Password); !matchPassword {
		uc.Logger.Warnf("Password mismatch for %s", req.Username)
		return res.LoginResponse{}, apperror.ErrInvalidCredentials
	}
	// generate token
	token, err := uc.JWT.GenerateToken(&currentAccount.User)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to generate token = %v", err)
		return res.LoginResponse{}, apperror.Internal(err)
	}
	// mapping response
	return res.LoginResponse{
		Token: token,
		User:  toUserResponse(currentAccount.User),
	}, nil
}

func (uc *AuthUsecaseImpl) RegisterUser(ctx context.Context, req *req.RegisterRequest) (res.RegisterResponse, error) {
	// validate request
	if err := uc.Validate.Struct(req); err != nil {
		uc.Logger.WithError(err).Errorf("failed to validete request : %v", err)
		return res.RegisterResponse{}, validationError(err)
	}
	// start transaction
	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	if _, err := uc.AuthRepository.FindByUsername(ctx, trx, req.Username); err == nil {
		return res.RegisterResponse{}, apperror.ErrUsernameTaken
	} else if !repository.IsNotFound(err) {
		uc.Logger.WithError(err).Errorf("failed to check username : %v", err)
		return res.RegisterResponse{}, apperror.Internal(err)
	}

	// mapping request to entity
	hashPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to hash password : %v", err)
		return res.RegisterResponse{}, apperror.Internal(err)
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = req.Username
	}

	newAccount := &entity.Account{
		UserName: req.Username,
		Password: hashPassword,
		User: entity.User{
			Username: req.Username,
			Name:     displayName,
		},
	}
	// save to db
	if err := uc.AuthRepository.Save(ctx, trx, newAccount); err != nil {
		if repository.IsDuplicate(err) {
			return res.RegisterResponse{}, apperror.ErrUsernameTaken
		}
		uc.Logger.WithError(err).Errorf("failed to save user : %v", err)
		return res.RegisterResponse{}, apperror.Internal(err)
	}
	// if success commit else rollback
	if err := trx.Commit().Error; err != nil {
		uc.Logger.WithError(err).Errorf("failed to commit user : %v", err)
		return res.RegisterResponse{}, apperror.Internal(err)
	}
	// mapping response
	return res.RegisterResponse{
		ID:       newAccount.User.ID,
		Username: newAccount.User.Username,
		Name:     newAccount.User.Name,
	}, nil
}
