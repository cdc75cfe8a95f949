package repository

import (
	"context"
	"database/sql"

	"github.com/student-records-api/internal/database"
	"github.com/student-records-api/internal/models"
)

// settingsRepo is the concrete implementation of SettingsRepository
type settingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new company settings repository
func NewSettingsRepo(db *database.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

// Get retrieves the single settings row, or nil when none exists yet
func (r *settingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	query := `
		SELECT id, company_name, header_color, footer_text, footer_color,
		       active_nav_index_color, company_name_color, footer_text_color,
		       COALESCE(logo_url, '')
		FROM company_settings WHERE id = 1
	`
	var s models.Settings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.CompanyName, &s.HeaderColor, &s.FooterText, &s.FooterColor,
		&s.ActiveNavIndexColor, &s.CompanyNameColor, &s.FooterTextColor,
		&s.LogoURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save upserts the settings row. The logo column is only touched when
// updateLogo is set, so a save without a new logo keeps the current one.
func (r *settingsRepo) Save(ctx context.Context, s *models.Settings, updateLogo bool) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}

	if existing == nil {
		query := `
			INSERT INTO company_settings (
				id, company_name, header_color, footer_text, footer_color,
				active_nav_index_color, company_name_color, footer_text_color, logo_url
			) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := r.db.ExecContext(ctx, query,
			s.CompanyName, s.HeaderColor, s.FooterText, s.FooterColor,
			s.ActiveNavIndexColor, s.CompanyNameColor, s.FooterTextColor,
			nullIfEmpty(s.LogoURL),
		)
		return err
	}

	if updateLogo {
		query := `
			UPDATE company_settings SET
				company_name = $1, header_color = $2, footer_text = $3,
				footer_color = $4, active_nav_index_color = $5,
				company_name_color = $6, footer_text_color = $7, logo_url = $8
			WHERE id = 1
		`
		_, err := r.db.ExecContext(ctx, query,
			s.CompanyName, s.HeaderColor, s.FooterText, s.FooterColor,
			s.ActiveNavIndexColor, s.CompanyNameColor, s.FooterTextColor,
			nullIfEmpty(s.LogoURL),
		)
		return err
	}

	query := `
		UPDATE company_settings SET
			company_name = $1, header_color = $2, footer_text = $3,
			footer_color = $4, active_nav_index_color = $5,
			company_name_color = $6, footer_text_color = $7
		WHERE id = 1
	`
	_, err = r.db.ExecContext(ctx, query,
		s.CompanyName, s.HeaderColor, s.FooterText, s.FooterColor,
		s.ActiveNavIndexColor, s.CompanyNameColor, s.FooterTextColor,
	)
	return err
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
