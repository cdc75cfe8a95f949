package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/student-records-api/internal/database"
	"github.com/student-records-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user and returns the assigned id
func (r *userRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (email, username, password, role, f_name, l_name, mobile_number, birthday, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role,
		user.FirstName, user.LastName, user.MobileNumber, user.Birthday,
		user.Status, time.Now(),
	).Scan(&id)
	return id, err
}

// GetByEmail retrieves a user, including the password hash, for login
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, username, password, role, f_name, l_name,
		       COALESCE(mobile_number, ''), COALESCE(birthday, ''), status, created_at
		FROM users WHERE email = $1
	`
	var user models.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.Role, &user.FirstName, &user.LastName, &user.MobileNumber,
		&user.Birthday, &user.Status, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists checks if a user with the given email exists
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	return exists, err
}

// GetAll retrieves all users without their password hashes
func (r *userRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, email, username, role, f_name, l_name,
		       COALESCE(mobile_number, ''), COALESCE(birthday, ''), status, created_at
		FROM users ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Email, &user.Username, &user.Role,
			&user.FirstName, &user.LastName, &user.MobileNumber,
			&user.Birthday, &user.Status, &user.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Update modifies an existing user's profile fields. Returns false when
// no user has the given id.
func (r *userRepo) Update(ctx context.Context, id int64, upd *models.UserUpdate) (bool, error) {
	query := `
		UPDATE users SET
			email = $1, username = $2, f_name = $3, l_name = $4,
			role = $5, mobile_number = $6, birthday = $7, status = $8,
			updated_at = $9
		WHERE id = $10
	`
	result, err := r.db.ExecContext(ctx, query,
		upd.Email, upd.Username, upd.FirstName, upd.LastName,
		upd.Role, upd.MobileNumber, upd.Birthday, upd.Status,
		time.Now(), id,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes a user. Deleting a missing user is not an error.
func (r *userRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}
