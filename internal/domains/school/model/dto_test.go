package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateSchoolRequest {
	return CreateSchoolRequest{
		Name:     "Greenwood High School",
		Address:  "12 Hill Road, Bandra West",
		City:     "Mumbai",
		State:    "Maharashtra",
		Contact:  "9876543210",
		Email:    "info@greenwood.edu",
		Students: "1200",
	}
}

func TestCreateSchoolRequest_Valid(t *testing.T) {
	req := validRequest()
	req.Normalize()

	assert.NoError(t, req.Validate())
}

func TestCreateSchoolRequest_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateSchoolRequest)
		field  string
	}{
		{"blank name", func(r *CreateSchoolRequest) { r.Name = "" }, "Name"},
		{"whitespace-only name", func(r *CreateSchoolRequest) { r.Name = "   " }, "Name"},
		{"one-character name", func(r *CreateSchoolRequest) { r.Name = "A" }, "Name"},
		{"short address", func(r *CreateSchoolRequest) { r.Address = "12" }, "Address"},
		{"short city", func(r *CreateSchoolRequest) { r.City = "X" }, "City"},
		{"short state", func(r *CreateSchoolRequest) { r.State = "Y" }, "State"},
		{"contact with letters", func(r *CreateSchoolRequest) { r.Contact = "98765abc10" }, "Contact"},
		{"contact too short", func(r *CreateSchoolRequest) { r.Contact = "12345" }, "Contact"},
		{"contact too long", func(r *CreateSchoolRequest) { r.Contact = "1234567890123456" }, "Contact"},
		{"bad email", func(r *CreateSchoolRequest) { r.Email = "not-an-email" }, "Email"},
		{"students zero", func(r *CreateSchoolRequest) { r.Students = "0" }, "Students"},
		{"students negative", func(r *CreateSchoolRequest) { r.Students = "-5" }, "Students"},
		{"students non-numeric", func(r *CreateSchoolRequest) { r.Students = "many" }, "Students"},
		{"students blank", func(r *CreateSchoolRequest) { r.Students = "" }, "Students"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			req.Normalize()

			err := req.Validate()
			require.Error(t, err)

			var fields validation.Errors
			require.ErrorAs(t, err, &fields)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestCreateSchoolRequest_NormalizeTrims(t *testing.T) {
	req := CreateSchoolRequest{
		Name:     "  Greenwood High School  ",
		Address:  " 12 Hill Road ",
		City:     " Mumbai ",
		State:    " Maharashtra ",
		Contact:  " 9876543210 ",
		Email:    " info@greenwood.edu ",
		Students: " 1200 ",
	}
	req.Normalize()

	assert.Equal(t, "Greenwood High School", req.Name)
	assert.Equal(t, "9876543210", req.Contact)
	assert.NoError(t, req.Validate())
}

func TestStudentsCount(t *testing.T) {
	req := validRequest()

	n, err := req.StudentsCount()
	require.NoError(t, err)
	assert.Equal(t, 1200, n)
}
