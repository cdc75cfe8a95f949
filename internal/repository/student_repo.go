package repository

import (
	"context"

	"github.com/student-records-api/internal/database"
	"github.com/student-records-api/internal/models"
)

// studentRepo is the concrete implementation of StudentRepository
type studentRepo struct {
	db *database.DB
}

// NewStudentRepo creates a new student profile repository
func NewStudentRepo(db *database.DB) StudentRepository {
	return &studentRepo{db: db}
}

const studentColumns = `
	id, student_number, email, first_name, COALESCE(middle_name, ''), last_name,
	course, section, birthday, civil_status, citizenship, religion,
	home_address, zip_code, mobile_number
`

// GetAll retrieves all student profiles
func (r *studentRepo) GetAll(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+studentColumns+" FROM stud_profile ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		err := rows.Scan(
			&s.ID, &s.StudentNumber, &s.Email, &s.FirstName, &s.MiddleName,
			&s.LastName, &s.Course, &s.Section, &s.Birthday, &s.CivilStatus,
			&s.Citizenship, &s.Religion, &s.HomeAddress, &s.ZipCode,
			&s.MobileNumber,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, &s)
	}
	return students, rows.Err()
}

// Create inserts a new student profile and returns the assigned id
func (r *studentRepo) Create(ctx context.Context, s *models.Student) (int64, error) {
	query := `
		INSERT INTO stud_profile (
			student_number, email, first_name, middle_name, last_name,
			course, section, birthday, civil_status, citizenship, religion,
			home_address, zip_code, mobile_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		s.StudentNumber, s.Email, s.FirstName, s.MiddleName, s.LastName,
		s.Course, s.Section, s.Birthday, s.CivilStatus, s.Citizenship,
		s.Religion, s.HomeAddress, s.ZipCode, s.MobileNumber,
	).Scan(&id)
	return id, err
}

// Update modifies an existing student profile. Returns false when no
// profile has the given id.
func (r *studentRepo) Update(ctx context.Context, id int64, s *models.Student) (bool, error) {
	query := `
		UPDATE stud_profile SET
			student_number = $1, email = $2, first_name = $3, middle_name = $4,
			last_name = $5, course = $6, section = $7, birthday = $8,
			civil_status = $9, citizenship = $10, religion = $11,
			home_address = $12, zip_code = $13, mobile_number = $14
		WHERE id = $15
	`
	result, err := r.db.ExecContext(ctx, query,
		s.StudentNumber, s.Email, s.FirstName, s.MiddleName, s.LastName,
		s.Course, s.Section, s.Birthday, s.CivilStatus, s.Citizenship,
		s.Religion, s.HomeAddress, s.ZipCode, s.MobileNumber, id,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes a student profile. Returns false when no profile has the
// given id.
func (r *studentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM stud_profile WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Count returns the total number of student profiles
func (r *studentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stud_profile").Scan(&count)
	return count, err
}

// DistributionBySection counts students grouped by section
func (r *studentRepo) DistributionBySection(ctx context.Context) ([]models.Distribution, error) {
	return r.distribution(ctx, "SELECT section, COUNT(*) FROM stud_profile GROUP BY section ORDER BY section")
}

// DistributionByCourse counts students grouped by course
func (r *studentRepo) DistributionByCourse(ctx context.Context) ([]models.Distribution, error) {
	return r.distribution(ctx, "SELECT course, COUNT(*) FROM stud_profile GROUP BY course ORDER BY course")
}

func (r *studentRepo) distribution(ctx context.Context, query string) ([]models.Distribution, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dist []models.Distribution
	for rows.Next() {
		var d models.Distribution
		if err := rows.Scan(&d.Label, &d.Count); err != nil {
			return nil, err
		}
		dist = append(dist, d)
	}
	return dist, rows.Err()
}
