package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type slotRequest struct {
	Date  string `validate:"required,datetime=2006-01-02"`
	Time  string `validate:"required,hhmm"`
	Phone string `validate:"omitempty,e164"`
	Blood string `validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Local string `validate:"omitempty,phone"`
}

func TestValidate_Clock(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		assert.NoError(t, v.Validate(&slotRequest{Date: "2030-01-10", Time: ok}), ok)
	}
	for _, bad := range []string{"24:00", "9:30", "09:60", "0930"} {
		assert.Error(t, v.Validate(&slotRequest{Date: "2030-01-10", Time: bad}), bad)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&slotRequest{Date: "10/01/2030", Time: "25:00", Phone: "12", Blood: "C+"})
	errs := v.FormatValidationErrors(err)

	assert.Equal(t, "Date must be a date in YYYY-MM-DD format", errs["Date"])
	assert.Equal(t, "Time must be a time in HH:MM format", errs["Time"])
	assert.Equal(t, "Phone must be a valid phone number", errs["Phone"])
	assert.Equal(t, "Blood must be one of: A+ A- B+ B- AB+ AB- O+ O-", errs["Blood"])
}

func TestFormatValidationErrors_Required(t *testing.T) {
	v := NewValidator()

	errs := v.FormatValidationErrors(v.Validate(&slotRequest{}))
	assert.Equal(t, "Date is required", errs["Date"])
	assert.Equal(t, "Time is required", errs["Time"])
}

func TestValidate_Phone(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"+919876543210", "9876543210", "12"} {
		assert.NoError(t, v.Validate(&slotRequest{Date: "2030-01-10", Time: "09:00", Local: ok}), ok)
	}
	for _, bad := range []string{"0123", "+0123", "98765-43210", "1234567890123456"} {
		assert.Error(t, v.Validate(&slotRequest{Date: "2030-01-10", Time: "09:00", Local: bad}), bad)
	}
}
