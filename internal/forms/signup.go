package forms

// Field names a signup input. The value is the input's name attribute.
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
)

// Fields lists every signup field in render order.
var Fields = []Field{FieldEmail, FieldPassword, FieldConfirmPassword}

// ParseField reports whether name is a known signup field.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// State is the current value of each input.
type State struct {
	Email           string `form:"email" validate:"signup_email"`
	Password        string `form:"password" validate:"min=5"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

// Get returns the value of field, or "" for an unknown field.
func (s State) Get(field Field) string {
	switch field {
	case FieldEmail:
		return s.Email
	case FieldPassword:
		return s.Password
	case FieldConfirmPassword:
		return s.ConfirmPassword
	}
	return ""
}

// Errors maps a field to its validation message. A missing entry means the field is valid.
type Errors map[Field]string

func (e Errors) Has(field Field) bool {
	return e[field] != ""
}

func (e Errors) Get(field Field) string {
	return e[field]
}

// Fields returns the fields that have a message, in render order.
func (e Errors) Fields() []Field {
	failed := make([]Field, 0, len(e))
	for _, f := range Fields {
		if e.Has(f) {
			failed = append(failed, f)
		}
	}
	return failed
}

// Valid returns true if no field has a message.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Signup is one signup form instance. The zero value is not usable, use NewSignup.
type Signup struct {
	State  State
	Errors Errors
}

// NewSignup returns a form with every field empty and no errors.
func NewSignup() *Signup {
	return &Signup{Errors: Errors{}}
}

// Set updates a single field. It never validates; unknown fields are ignored.
func (s *Signup) Set(field Field, value string) {
	switch field {
	case FieldEmail:
		s.State.Email = value
	case FieldPassword:
		s.State.Password = value
	case FieldConfirmPassword:
		s.State.ConfirmPassword = value
	}
}

// Value returns the current value of field.
func (s *Signup) Value(field Field) string {
	return s.State.Get(field)
}

// Submit validates the current state and replaces Errors with the result.
func (s *Signup) Submit() Errors {
	s.Errors = Validate(s.State)
	return s.Errors
}
