package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Username string  `json:"username" validate:"required,min=3,max=50,username"`
	Password string  `json:"password" validate:"required,min=6"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    string  `json:"phoneNumber" validate:"omitempty,phone"`
	Price    float64 `json:"packagePrice" validate:"gt=0"`
	Method   string  `json:"paymentMethod" validate:"omitempty,oneof=cash card"`
}

func valid() registerInput {
	return registerInput{Username: "jean_claude", Password: "secret1", Price: 5000}
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		mutate  func(in *registerInput)
		wantMsg string
	}{
		{name: "valid", mutate: func(in *registerInput) {}},
		{name: "missing username", mutate: func(in *registerInput) { in.Username = "" }, wantMsg: "username is required"},
		{name: "short password", mutate: func(in *registerInput) { in.Password = "abc" }, wantMsg: "password must be at least 6 characters"},
		{name: "bad username chars", mutate: func(in *registerInput) { in.Username = "jean claude" }, wantMsg: "username may contain only letters, digits, '_', '.' and '-'"},
		{name: "bad email", mutate: func(in *registerInput) { in.Email = "nope" }, wantMsg: "email must be a valid email address"},
		{name: "bad phone", mutate: func(in *registerInput) { in.Phone = "call me" }, wantMsg: "phoneNumber must be a valid phone number"},
		{name: "zero price", mutate: func(in *registerInput) { in.Price = 0 }, wantMsg: "packagePrice must be greater than 0"},
		{name: "unknown method", mutate: func(in *registerInput) { in.Method = "cheque" }, wantMsg: "paymentMethod must be one of: cash, card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)

			err := v.Struct(in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestMessage(t *testing.T) {
	v := New()
	in := valid()
	in.Username = ""

	err := fmt.Errorf("%w: %w", errors.New("cars: invalid input"), v.Struct(in))

	assert.Equal(t, "username is required", Message(err, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("other"), "fallback"))
	assert.Equal(t, "custom", Message(NewError("serviceDate", "custom"), "fallback"))
}
