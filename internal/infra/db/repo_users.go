package db

import (
	"context"
	"errors"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		OrgName:           u.OrgName,
		Role:              string(u.Role),
		Status:            string(u.Status),
		TerminationReason: u.TerminationReason,
		OIDCProvider:      u.OIDCProvider,
		OIDCSubject:       u.OIDCSubject,
		CreatedAt:         u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:                m.ID,
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		OrgName:           m.OrgName,
		Role:              domain.Role(m.Role),
		Status:            domain.UserStatus(m.Status),
		TerminationReason: m.TerminationReason,
		OIDCProvider:      m.OIDCProvider,
		OIDCSubject:       m.OIDCSubject,
		CreatedAt:         m.CreatedAt,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user := userFromModel(model)
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user := userFromModel(model)
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) error {
	model := userToModel(u)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateIdentifier
		}
		return err
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u domain.User) error {
	model := userToModel(u)
	result := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("id = ?", u.ID).
		Select("Name", "OrgName", "Status", "TerminationReason", "OIDCProvider", "OIDCSubject").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	values := make([]string, 0, len(roles))
	for _, role := range roles {
		values = append(values, string(role))
	}
	var models []UserModel
	err := r.db.WithContext(ctx).
		Where("role IN ?", values).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(models))
	for _, model := range models {
		out = append(out, userFromModel(model))
	}
	return out, nil
}
