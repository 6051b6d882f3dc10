package model

import (
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// CreateSchoolRequest carries the multipart form fields of a submission.
// Students arrives as a string because multipart values are text.
type CreateSchoolRequest struct {
	Name     string `form:"name"`
	Address  string `form:"address"`
	City     string `form:"city"`
	State    string `form:"state"`
	Contact  string `form:"contact"`
	Email    string `form:"email_id"`
	Students string `form:"students"`
}

// Normalize trims surrounding whitespace so that whitespace-only input
// fails the required checks like empty input does.
func (r *CreateSchoolRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Email = strings.TrimSpace(r.Email)
	r.Students = strings.TrimSpace(r.Students)
}

// Validate applies the same rules the submission form enforces client-side.
func (r CreateSchoolRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 0).Error("name must be at least 2 characters"),
		),
		validation.Field(&r.Address,
			validation.Required.Error("address is required"),
			validation.Length(5, 0).Error("address must be at least 5 characters"),
		),
		validation.Field(&r.City,
			validation.Required.Error("city is required"),
			validation.Length(2, 0).Error("city must be at least 2 characters"),
		),
		validation.Field(&r.State,
			validation.Required.Error("state is required"),
			validation.Length(2, 0).Error("state must be at least 2 characters"),
		),
		validation.Field(&r.Contact,
			validation.Required.Error("contact is required"),
			validation.Match(digitsOnly).Error("contact must contain only digits"),
			validation.Length(7, 15).Error("contact must be 7-15 digits"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Students,
			validation.Required.Error("number of students is required"),
			validation.Match(digitsOnly).Error("students must be a valid number"),
			validation.By(positiveNumber),
		),
	)
}

func positiveNumber(value interface{}) error {
	s, _ := value.(string)
	if s == "" || !digitsOnly.MatchString(s) {
		// Required and Match already reported these.
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return validation.NewError("validation_positive", "must be greater than 0")
	}
	return nil
}

// StudentsCount parses the students form value. Call after Validate.
func (r CreateSchoolRequest) StudentsCount() (int, error) {
	return strconv.Atoi(r.Students)
}

// CreateSchoolResponse is the 201 body for a successful submission.
type CreateSchoolResponse struct {
	Message string  `json:"message"`
	ID      int64   `json:"id"`
	Image   *string `json:"image"`
}

// StatsResponse is the landing page payload. TotalStudents is a display
// string: thousands are abbreviated to one decimal with a "K+" suffix.
type StatsResponse struct {
	TotalSchools  int    `json:"totalSchools"`
	TotalStudents string `json:"totalStudents"`
	TotalCities   int    `json:"totalCities"`
}
