package signup

import "signupform/internal/forms"

// Input describes how one signup field is rendered.
type Input struct {
	Field forms.Field
	ID    string
	Label string
	Type  string
}

func (i Input) Name() string {
	return string(i.Field)
}

// Inputs are rendered in this order.
var Inputs = []Input{
	{Field: forms.FieldEmail, ID: "email", Label: "Email address", Type: "email"},
	{Field: forms.FieldPassword, ID: "password", Label: "Password", Type: "password"},
	{Field: forms.FieldConfirmPassword, ID: "confirm-password", Label: "Confirm Password", Type: "password"},
}
