package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/secrets"

	"gorm.io/gorm"
)

// SmtpProviderRepository seals the SMTP password with the secrets box on
// write and opens it on read, so plaintext credentials never hit the
// database.
type SmtpProviderRepository struct {
	db  *gorm.DB
	box *secrets.Box
}

func NewSmtpProviderRepository(db *gorm.DB, box *secrets.Box) *SmtpProviderRepository {
	return &SmtpProviderRepository{db: db, box: box}
}

func (r *SmtpProviderRepository) toModel(p domain.SmtpProvider) (SmtpProviderModel, error) {
	sealed, err := r.box.Encrypt(p.Password)
	if err != nil {
		return SmtpProviderModel{}, fmt.Errorf("seal smtp password: %w", err)
	}
	return SmtpProviderModel{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Host:        p.Host,
		Port:        p.Port,
		Username:    p.Username,
		Password:    sealed,
		Encryption:  p.Encryption,
		FromAddress: p.FromAddress,
		FromName:    p.FromName,
		IsGlobal:    p.IsGlobal,
		CreatedAt:   p.CreatedAt,
	}, nil
}

func (r *SmtpProviderRepository) fromModel(m SmtpProviderModel) (domain.SmtpProvider, error) {
	password, err := r.box.Decrypt(m.Password)
	if err != nil {
		return domain.SmtpProvider{}, fmt.Errorf("open smtp password: %w", err)
	}
	return domain.SmtpProvider{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Host:        m.Host,
		Port:        m.Port,
		Username:    m.Username,
		Password:    password,
		Encryption:  m.Encryption,
		FromAddress: m.FromAddress,
		FromName:    m.FromName,
		IsGlobal:    m.IsGlobal,
		CreatedAt:   m.CreatedAt,
	}, nil
}

func (r *SmtpProviderRepository) GetByID(ctx context.Context, id string) (*domain.SmtpProvider, error) {
	var model SmtpProviderModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	provider, err := r.fromModel(model)
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *SmtpProviderRepository) Create(ctx context.Context, p domain.SmtpProvider) error {
	model, err := r.toModel(p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *SmtpProviderRepository) Update(ctx context.Context, p domain.SmtpProvider) error {
	model, err := r.toModel(p)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&SmtpProviderModel{}).
		Where("id = ?", p.ID).
		Select("Name", "Host", "Port", "Username", "Password", "Encryption", "FromAddress", "FromName").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SmtpProviderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&SmtpProviderModel{}, "id = ?", id).Error
}

func (r *SmtpProviderRepository) ListByUser(ctx context.Context, userID string) ([]domain.SmtpProvider, error) {
	var models []SmtpProviderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.SmtpProvider, 0, len(models))
	for _, model := range models {
		provider, err := r.fromModel(model)
		if err != nil {
			return nil, err
		}
		out = append(out, provider)
	}
	return out, nil
}
