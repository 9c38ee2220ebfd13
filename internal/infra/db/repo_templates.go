package db

import (
	"context"
	"errors"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	"gorm.io/gorm"
)

type CertificateTemplateRepository struct {
	db *gorm.DB
}

func NewCertificateTemplateRepository(db *gorm.DB) *CertificateTemplateRepository {
	return &CertificateTemplateRepository{db: db}
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func idValue(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func certTemplateToModel(t domain.CertificateTemplate) CertificateTemplateModel {
	return CertificateTemplateModel{
		ID:                 t.ID,
		UserID:             t.UserID,
		Name:               t.Name,
		Content:            t.Content,
		Type:               string(t.Type),
		IsGlobal:           t.IsGlobal,
		OriginalTemplateID: optionalID(t.OriginalTemplateID),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func certTemplateFromModel(m CertificateTemplateModel) domain.CertificateTemplate {
	return domain.CertificateTemplate{
		ID:                 m.ID,
		UserID:             m.UserID,
		Name:               m.Name,
		Content:            m.Content,
		Type:               domain.TemplateType(m.Type),
		IsGlobal:           m.IsGlobal,
		OriginalTemplateID: idValue(m.OriginalTemplateID),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (r *CertificateTemplateRepository) GetByID(ctx context.Context, id string) (*domain.CertificateTemplate, error) {
	var model CertificateTemplateModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	t := certTemplateFromModel(model)
	return &t, nil
}

func (r *CertificateTemplateRepository) Create(ctx context.Context, t domain.CertificateTemplate) error {
	model := certTemplateToModel(t)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *CertificateTemplateRepository) Update(ctx context.Context, t domain.CertificateTemplate) error {
	model := certTemplateToModel(t)
	result := r.db.WithContext(ctx).Model(&CertificateTemplateModel{}).
		Where("id = ?", t.ID).
		Select("Name", "Content", "Type", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CertificateTemplateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&CertificateTemplateModel{}, "id = ?", id).Error
}

func (r *CertificateTemplateRepository) ListByUser(ctx context.Context, userID string) ([]domain.CertificateTemplate, error) {
	var models []CertificateTemplateModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_global = false", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.CertificateTemplate, 0, len(models))
	for _, model := range models {
		out = append(out, certTemplateFromModel(model))
	}
	return out, nil
}

func (r *CertificateTemplateRepository) ListGlobal(ctx context.Context) ([]domain.CertificateTemplate, error) {
	var models []CertificateTemplateModel
	err := r.db.WithContext(ctx).
		Where("is_global = true").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.CertificateTemplate, 0, len(models))
	for _, model := range models {
		out = append(out, certTemplateFromModel(model))
	}
	return out, nil
}

func (r *CertificateTemplateRepository) CountVisible(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&CertificateTemplateModel{}).
		Where("user_id = ? OR is_global = true", userID).
		Count(&n).Error
	return n, err
}

type EmailTemplateRepository struct {
	db *gorm.DB
}

func NewEmailTemplateRepository(db *gorm.DB) *EmailTemplateRepository {
	return &EmailTemplateRepository{db: db}
}

func emailTemplateToModel(t domain.EmailTemplate) EmailTemplateModel {
	return EmailTemplateModel{
		ID:                 t.ID,
		UserID:             t.UserID,
		Name:               t.Name,
		Subject:            t.Subject,
		Body:               t.Body,
		IsGlobal:           t.IsGlobal,
		OriginalTemplateID: optionalID(t.OriginalTemplateID),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func emailTemplateFromModel(m EmailTemplateModel) domain.EmailTemplate {
	return domain.EmailTemplate{
		ID:                 m.ID,
		UserID:             m.UserID,
		Name:               m.Name,
		Subject:            m.Subject,
		Body:               m.Body,
		IsGlobal:           m.IsGlobal,
		OriginalTemplateID: idValue(m.OriginalTemplateID),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (r *EmailTemplateRepository) GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	var model EmailTemplateModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	t := emailTemplateFromModel(model)
	return &t, nil
}

func (r *EmailTemplateRepository) Create(ctx context.Context, t domain.EmailTemplate) error {
	model := emailTemplateToModel(t)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *EmailTemplateRepository) Update(ctx context.Context, t domain.EmailTemplate) error {
	model := emailTemplateToModel(t)
	result := r.db.WithContext(ctx).Model(&EmailTemplateModel{}).
		Where("id = ?", t.ID).
		Select("Name", "Subject", "Body", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EmailTemplateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&EmailTemplateModel{}, "id = ?", id).Error
}

func (r *EmailTemplateRepository) ListByUser(ctx context.Context, userID string) ([]domain.EmailTemplate, error) {
	var models []EmailTemplateModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_global = false", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.EmailTemplate, 0, len(models))
	for _, model := range models {
		out = append(out, emailTemplateFromModel(model))
	}
	return out, nil
}

func (r *EmailTemplateRepository) ListGlobal(ctx context.Context) ([]domain.EmailTemplate, error) {
	var models []EmailTemplateModel
	err := r.db.WithContext(ctx).
		Where("is_global = true").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.EmailTemplate, 0, len(models))
	for _, model := range models {
		out = append(out, emailTemplateFromModel(model))
	}
	return out, nil
}

func (r *EmailTemplateRepository) CountVisible(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&EmailTemplateModel{}).
		Where("user_id = ? OR is_global = true", userID).
		Count(&n).Error
	return n, err
}
