package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/querier"
)

type StoreAPI interface {
	Insert(ctx context.Context, email, passwordHash, name string) (string, error)
	Get(ctx context.Context, id string) (Identity, error)
	List(ctx context.Context, includeDeleted bool) ([]Identity, error)
	ApplyProfileEdit(ctx context.Context, id string, edit ProfileEdit) error
	SetRole(ctx context.Context, id, role string) error
	SetDepartment(ctx context.Context, id, department string) error
	SetProfileImageURL(ctx context.Context, id, url string) error
	SoftDelete(ctx context.Context, id string) error
	DepartmentsByUserID(ctx context.Context, userIDs []string) (map[string]string, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const identityColumns = `
  id, email, name, role, COALESCE(department, ''), COALESCE(position, ''),
  COALESCE(profile_image_url, ''), COALESCE(national_id, ''), dob,
  created_at, profile_edited_times, is_deleted
`

func scanIdentity(row pgx.Row) (Identity, error) {
	var out Identity
	err := row.Scan(
		&out.ID, &out.Email, &out.Name, &out.Role, &out.Department, &out.Position,
		&out.ProfileImageURL, &out.NationalID, &out.DateOfBirth,
		&out.CreatedAt, &out.ProfileEditedTimes, &out.IsDeleted,
	)
	return out, err
}

func (s *Store) Insert(ctx context.Context, email, passwordHash, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, name, role)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, email, passwordHash, name, string(auth.RolePendingApproval)).Scan(&id)
	if isUniqueViolation(err) {
		return "", ErrEmailTaken
	}
	return id, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) Get(ctx context.Context, id string) (Identity, error) {
	identity, err := scanIdentity(s.DB.QueryRow(ctx, "SELECT "+identityColumns+" FROM users WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Identity{}, ErrNotFound
	}
	return identity, err
}

func (s *Store) List(ctx context.Context, includeDeleted bool) ([]Identity, error) {
	query := "SELECT " + identityColumns + " FROM users"
	if !includeDeleted {
		query += " WHERE NOT is_deleted"
	}
	query += " ORDER BY name, email"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, identity)
	}
	return out, rows.Err()
}

func (s *Store) ApplyProfileEdit(ctx context.Context, id string, edit ProfileEdit) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE users
    SET name = $1, position = $2, national_id = $3, dob = $4,
        profile_edited_times = profile_edited_times + 1
    WHERE id = $5
  `, edit.Name, edit.Position, edit.NationalID, edit.DateOfBirth, id)
	return err
}

// SetRole writes both the dedicated role record and the profile copy so the
// fallback chain stays consistent.
func (s *Store) SetRole(ctx context.Context, id, role string) error {
	if _, err := s.DB.Exec(ctx, `
    INSERT INTO user_roles (user_id, role, updated_at)
    VALUES ($1,$2,now())
    ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = now()
  `, id, role); err != nil {
		return err
	}
	_, err := s.DB.Exec(ctx, "UPDATE users SET role = $1 WHERE id = $2", role, id)
	return err
}

func (s *Store) SetDepartment(ctx context.Context, id, department string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET department = $1 WHERE id = $2", department, id)
	return err
}

func (s *Store) SetProfileImageURL(ctx context.Context, id, url string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET profile_image_url = $1 WHERE id = $2", url, id)
	return err
}

func (s *Store) SoftDelete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_deleted = true WHERE id = $1", id)
	return err
}

func (s *Store) DepartmentsByUserID(ctx context.Context, userIDs []string) (map[string]string, error) {
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}
	rows, err := s.DB.Query(ctx, "SELECT id, COALESCE(department, '') FROM users WHERE id = ANY($1)", userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var id, department string
		if err := rows.Scan(&id, &department); err != nil {
			return nil, err
		}
		out[id] = department
	}
	return out, rows.Err()
}
