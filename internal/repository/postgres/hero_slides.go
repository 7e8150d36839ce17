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

type heroSlideRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHeroSlideRepository creates a new hero slide repository
func NewHeroSlideRepository(db *sql.DB, logger *zap.Logger) *heroSlideRepository {
	return &heroSlideRepository{
		db:     db,
		logger: logger,
	}
}

func (r *heroSlideRepository) List(ctx context.Context) ([]*domain.HeroSlide, error) {
	query := `
		SELECT id, badge, title, description, button_text, accent_color, display_order, created_at, updated_at
		FROM hero_slides
		ORDER BY display_order, created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list hero slides", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	slides := make([]*domain.HeroSlide, 0)
	for rows.Next() {
		var s domain.HeroSlide
		if err := rows.Scan(
			&s.ID,
			&s.Badge,
			&s.Title,
			&s.Description,
			&s.ButtonText,
			&s.AccentColor,
			&s.DisplayOrder,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		slides = append(slides, &s)
	}
	return slides, rows.Err()
}

func (r *heroSlideRepository) Create(ctx context.Context, slide *domain.HeroSlide) error {
	query := `
		INSERT INTO hero_slides (id, badge, title, description, button_text, accent_color, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	if slide.ID == uuid.Nil {
		slide.ID = uuid.New()
	}
	if slide.CreatedAt.IsZero() {
		slide.CreatedAt = now
	}
	slide.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		slide.ID,
		slide.Badge,
		slide.Title,
		slide.Description,
		slide.ButtonText,
		slide.AccentColor,
		slide.DisplayOrder,
		slide.CreatedAt,
		slide.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create hero slide", zap.Error(err))
		return err
	}
	return nil
}

func (r *heroSlideRepository) Update(ctx context.Context, slide *domain.HeroSlide) error {
	query := `
		UPDATE hero_slides
		SET badge = $2, title = $3, description = $4, button_text = $5, accent_color = $6, display_order = $7, updated_at = $8
		WHERE id = $1
	`

	slide.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		slide.ID,
		slide.Badge,
		slide.Title,
		slide.Description,
		slide.ButtonText,
		slide.AccentColor,
		slide.DisplayOrder,
		slide.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update hero slide", zap.Error(err))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "hero_slide", ID: slide.ID.String()}
	}
	return nil
}

func (r *heroSlideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hero_slides WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete hero slide", zap.Error(err))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "hero_slide", ID: id.String()}
	}
	return nil
}
