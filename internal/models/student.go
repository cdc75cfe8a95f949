package models

// Student represents a student profile record.
type Student struct {
	ID            int64  `json:"id" db:"id"`
	StudentNumber string `json:"student_number" db:"student_number"`
	Email         string `json:"email" db:"email"`
	FirstName     string `json:"first_name" db:"first_name"`
	MiddleName    string `json:"middle_name" db:"middle_name"`
	LastName      string `json:"last_name" db:"last_name"`
	Course        string `json:"course" db:"course"`
	Section       string `json:"section" db:"section"`
	Birthday      string `json:"birthday" db:"birthday"`
	CivilStatus   string `json:"civil_status" db:"civil_status"`
	Citizenship   string `json:"citizenship" db:"citizenship"`
	Religion      string `json:"religion" db:"religion"`
	HomeAddress   string `json:"home_address" db:"home_address"`
	ZipCode       string `json:"zip_code" db:"zip_code"`
	MobileNumber  string `json:"mobile_number" db:"mobile_number"`
}

// RequiredFieldsPresent reports whether every mandatory profile field is set.
// MiddleName is the only optional field.
func (s *Student) RequiredFieldsPresent() bool {
	required := []string{
		s.StudentNumber, s.Email, s.FirstName, s.LastName, s.Course,
		s.Section, s.Birthday, s.CivilStatus, s.Citizenship, s.Religion,
		s.HomeAddress, s.ZipCode, s.MobileNumber,
	}
	for _, f := range required {
		if f == "" {
			return false
		}
	}
	return true
}

// Distribution is one bucket of a group-by count (e.g. students per course).
type Distribution struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
