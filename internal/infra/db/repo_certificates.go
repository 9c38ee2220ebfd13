package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func certificateToModel(cert domain.Certificate) (CertificateModel, error) {
	var payload []byte
	if len(cert.Payload) > 0 {
		encoded, err := json.Marshal(cert.Payload)
		if err != nil {
			return CertificateModel{}, fmt.Errorf("encode payload: %w", err)
		}
		payload = encoded
	}
	return CertificateModel{
		ID:                    cert.ID,
		UserID:                cert.UserID,
		CertificateTemplateID: cert.CertificateTemplateID,
		UniqueID:              cert.UniqueID,
		RecipientName:         cert.RecipientName,
		RecipientEmail:        cert.RecipientEmail,
		State:                 cert.State,
		EventType:             cert.EventType,
		EventTitle:            cert.EventTitle,
		IssueDate:             cert.IssueDate,
		IssuerName:            cert.IssuerName,
		OrgName:               cert.OrgName,
		Status:                string(cert.Status),
		RevocationReason:      cert.RevocationReason,
		RevokedAt:             cert.RevokedAt,
		FilePath:              cert.FilePath,
		PayloadJSON:           payload,
		CreatedAt:             cert.CreatedAt,
	}, nil
}

func certificateFromModel(model CertificateModel) (domain.Certificate, error) {
	cert := domain.Certificate{
		ID:                    model.ID,
		UserID:                model.UserID,
		CertificateTemplateID: model.CertificateTemplateID,
		UniqueID:              model.UniqueID,
		RecipientName:         model.RecipientName,
		RecipientEmail:        model.RecipientEmail,
		State:                 model.State,
		EventType:             model.EventType,
		EventTitle:            model.EventTitle,
		IssueDate:             model.IssueDate,
		IssuerName:            model.IssuerName,
		OrgName:               model.OrgName,
		Status:                domain.CertificateStatus(model.Status),
		RevocationReason:      model.RevocationReason,
		RevokedAt:             model.RevokedAt,
		FilePath:              model.FilePath,
		CreatedAt:             model.CreatedAt,
	}
	if len(model.PayloadJSON) > 0 {
		if err := json.Unmarshal(model.PayloadJSON, &cert.Payload); err != nil {
			return domain.Certificate{}, fmt.Errorf("decode payload: %w", err)
		}
	}
	return cert, nil
}

func (r *CertificateRepository) Create(ctx context.Context, cert domain.Certificate) error {
	model, err := certificateToModel(cert)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateIdentifier
		}
		return err
	}
	return nil
}

func (r *CertificateRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Certificate, error) {
	var model CertificateModel
	err := r.db.WithContext(ctx).First(&model, "unique_id = ?", uniqueID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	cert, err := certificateFromModel(model)
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) UpdateFilePath(ctx context.Context, id, filePath string) error {
	result := r.db.WithContext(ctx).Model(&CertificateModel{}).
		Where("id = ?", id).
		Update("file_path", filePath)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Revoke only fires on an issued certificate; the status predicate keeps the
// transition one-way even under concurrent requests.
func (r *CertificateRepository) Revoke(ctx context.Context, id, reason string, revokedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&CertificateModel{}).
		Where("id = ? AND status = ?", id, string(domain.CertificateIssued)).
		Updates(map[string]any{
			"status":            string(domain.CertificateRevoked),
			"revocation_reason": reason,
			"revoked_at":        revokedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyRevoked
	}
	return nil
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Certificate, error) {
	var models []CertificateModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	certs := make([]domain.Certificate, 0, len(models))
	for _, model := range models {
		cert, err := certificateFromModel(model)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

func (r *CertificateRepository) StatsByUser(ctx context.Context, userID string) (usecase.DashboardStats, error) {
	var stats usecase.DashboardStats
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&CertificateModel{}).Where("user_id = ?", userID)
	}
	if err := base().Count(&stats.TotalCertificates).Error; err != nil {
		return usecase.DashboardStats{}, err
	}
	if err := base().Where("status = ?", string(domain.CertificateIssued)).Count(&stats.ActiveCertificates).Error; err != nil {
		return usecase.DashboardStats{}, err
	}
	if err := base().Where("status = ?", string(domain.CertificateRevoked)).Count(&stats.RevokedCertificates).Error; err != nil {
		return usecase.DashboardStats{}, err
	}
	if err := base().Where("recipient_email <> ''").Count(&stats.EmailsSent).Error; err != nil {
		return usecase.DashboardStats{}, err
	}
	return stats, nil
}
