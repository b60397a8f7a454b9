package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

// TokenBlacklist 已注销 Token 的签名存储
type TokenBlacklist interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
}

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo  repository.UserRepo
	blacklist TokenBlacklist
}

func NewUserService(userRepo repository.UserRepo, blacklist TokenBlacklist) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		blacklist: blacklist,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenDTO, error) {
	exist, err := s.userRepo.GetUserByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserExist
	}

	user := &model.User{}
	if err = copier.Copy(user, req); err != nil {
		return nil, err
	}
	user.Password, err = security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user.Role = consts.RoleUser

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.issueToken(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrPasswordIncorrect
		}
		return nil, err
	}
	return s.issueToken(user)
}

// Logout 将 Token 签名加入黑名单直到其过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrUnauthorized
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrUnauthorized
	}

	ttl := security.RemainingTTL(claims)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Revoke(ctx, signature, ttl)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user)
}

func (s *UserServiceImpl) issueToken(user *model.User) (*dto.TokenDTO, error) {
	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, User: userDTO}, nil
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	out := &dto.UserDTO{}
	if err := copier.Copy(out, user); err != nil {
		return nil, err
	}
	return out, nil
}
