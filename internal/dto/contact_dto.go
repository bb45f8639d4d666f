package dto

import "time"

type ContactRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Birthday  string  `json:"birthday"` // YYYY-MM-DD
	Note      *string `json:"note"`
}

func (r *ContactRequest) Validate() error {
	if err := requireLength("first_name", r.FirstName, 50); err != nil {
		return err
	}
	if err := requireLength("last_name", r.LastName, 50); err != nil {
		return err
	}
	if err := validEmail(r.Email); err != nil {
		return err
	}
	if err := requireLength("phone", r.Phone, 50); err != nil {
		return err
	}
	if r.Note != nil && len(*r.Note) > 100 {
		return fieldError("note", "must be at most 100 characters")
	}
	if _, err := r.ParseBirthday(); err != nil {
		return fieldError("birthday", "must be a date in YYYY-MM-DD form")
	}
	return nil
}

func (r *ContactRequest) ParseBirthday() (time.Time, error) {
	return time.Parse(time.DateOnly, r.Birthday)
}

type ContactUpdateRequest struct {
	ContactRequest
	Done bool `json:"done"`
}

type ContactStatusRequest struct {
	Done bool `json:"done"`
}
