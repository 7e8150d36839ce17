package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/pkg/errors"
)

type settingsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSettingsRepository creates a new site settings repository
func NewSettingsRepository(db *sql.DB, logger *zap.Logger) *settingsRepository {
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	query := `
		SELECT id, about_us, instagram_handle, whatsapp_number, footer_tagline,
			payment_qr_code, upi_id, gpay_number, paytm_number, updated_at
		FROM site_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s domain.SiteSettings
	var paymentQR, upiID, gpay, paytm sql.NullString

	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID,
		&s.AboutUs,
		&s.InstagramHandle,
		&s.WhatsappNumber,
		&s.FooterTagline,
		&paymentQR,
		&upiID,
		&gpay,
		&paytm,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "site_settings", ID: "singleton"}
	}
	if err != nil {
		r.logger.Error("Failed to get site settings", zap.Error(err))
		return nil, err
	}

	if paymentQR.Valid {
		s.PaymentQRCode = &paymentQR.String
	}
	if upiID.Valid {
		s.UPIID = &upiID.String
	}
	if gpay.Valid {
		s.GPayNumber = &gpay.String
	}
	if paytm.Valid {
		s.PaytmNumber = &paytm.String
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *domain.SiteSettings) error {
	query := `
		INSERT INTO site_settings (id, about_us, instagram_handle, whatsapp_number, footer_tagline,
			payment_qr_code, upi_id, gpay_number, paytm_number, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			about_us = EXCLUDED.about_us,
			instagram_handle = EXCLUDED.instagram_handle,
			whatsapp_number = EXCLUDED.whatsapp_number,
			footer_tagline = EXCLUDED.footer_tagline,
			payment_qr_code = EXCLUDED.payment_qr_code,
			upi_id = EXCLUDED.upi_id,
			gpay_number = EXCLUDED.gpay_number,
			paytm_number = EXCLUDED.paytm_number,
			updated_at = EXCLUDED.updated_at
	`

	if settings.ID == uuid.Nil {
		settings.ID = domain.SettingsID
	}
	settings.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		settings.ID,
		settings.AboutUs,
		settings.InstagramHandle,
		settings.WhatsappNumber,
		settings.FooterTagline,
		settings.PaymentQRCode,
		settings.UPIID,
		settings.GPayNumber,
		settings.PaytmNumber,
		settings.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert site settings", zap.Error(err))
		return err
	}
	return nil
}
