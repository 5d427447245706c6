package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

var ErrNotConfigured = errors.New("company profile not configured")

type StoreAPI interface {
	Get(ctx context.Context) (Profile, error)
	Upsert(ctx context.Context, profile Profile) error
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context) (Profile, error) {
	var p Profile
	err := s.DB.QueryRow(ctx, `
    SELECT logo_url, name_th, name_en, address, tax_id, phone, email, updated_by, updated_at
    FROM company_profile
    WHERE id = 1
  `).Scan(&p.LogoURL, &p.NameTH, &p.NameEN, &p.Address, &p.TaxID, &p.Phone, &p.Email, &p.UpdatedBy, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotConfigured
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Store) Upsert(ctx context.Context, p Profile) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO company_profile (id, logo_url, name_th, name_en, address, tax_id, phone, email, updated_by, updated_at)
    VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
    ON CONFLICT (id)
    DO UPDATE SET logo_url = EXCLUDED.logo_url, name_th = EXCLUDED.name_th,
      name_en = EXCLUDED.name_en, address = EXCLUDED.address, tax_id = EXCLUDED.tax_id,
      phone = EXCLUDED.phone, email = EXCLUDED.email,
      updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
  `, p.LogoURL, p.NameTH, p.NameEN, p.Address, p.TaxID, p.Phone, p.Email, p.UpdatedBy, p.UpdatedAt)
	return err
}
