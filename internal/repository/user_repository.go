package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// UserRepository 用户数据访问
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// GetByID 获取用户
func (r *UserRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("user %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 按邮箱获取用户
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 按用户名获取用户
func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateToken 保存令牌记录
func (r *UserRepository) CreateToken(token *model.AuthToken) error {
	return r.db.Create(token).Error
}

// GetTokenByValue 按令牌值获取记录
func (r *UserRepository) GetTokenByValue(value string) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.Where("token = ?", value).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("token not found")
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeUserTokens 撤销用户的全部令牌
func (r *UserRepository) RevokeUserTokens(userID string) error {
	return r.db.Model(&model.AuthToken{}).
		Where("user_id = ?", userID).
		Update("is_revoked", true).Error
}
