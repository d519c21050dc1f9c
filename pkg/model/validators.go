package model

// ValidatorKind tags a validator descriptor. Values are the SurveyJS validator
// type names.
type ValidatorKind string

const (
	ValidatorText       ValidatorKind = "text"
	ValidatorNumeric    ValidatorKind = "numeric"
	ValidatorEmail      ValidatorKind = "email"
	ValidatorRegex      ValidatorKind = "regex"
	ValidatorExpression ValidatorKind = "expression"
)

// DefaultValidatorMessage is reported when a validator carries no message.
const DefaultValidatorMessage = "Invalid value"

// Validator is a closed set of validation descriptors shared by the wire
// output and the server side engine.
type Validator interface {
	Kind() ValidatorKind
	ErrorMessage() string
	sealed()
}

func messageOrDefault(message string) string {
	if message == "" {
		return DefaultValidatorMessage
	}
	return message
}

// TextValidator bounds the length of the string form of an answer. A zero
// MaxLength leaves the upper bound open.
type TextValidator struct {
	Message        string
	MinLength      int
	MaxLength      int
	DisallowDigits bool
}

func (TextValidator) Kind() ValidatorKind { return ValidatorText }
func (v TextValidator) ErrorMessage() string { return messageOrDefault(v.Message) }
func (TextValidator) sealed() {}

// AllowDigits reports whether decimal digits are accepted.
func (v TextValidator) AllowDigits() bool { return !v.DisallowDigits }

// NumericValidator bounds a numeric answer. A zero MaxValue leaves the upper
// bound open.
type NumericValidator struct {
	Message  string
	MinValue float64
	MaxValue float64
}

func (NumericValidator) Kind() ValidatorKind { return ValidatorNumeric }
func (v NumericValidator) ErrorMessage() string { return messageOrDefault(v.Message) }
func (NumericValidator) sealed() {}

// EmailValidator accepts syntactically valid email addresses.
type EmailValidator struct {
	Message string
}

func (EmailValidator) Kind() ValidatorKind { return ValidatorEmail }
func (v EmailValidator) ErrorMessage() string { return messageOrDefault(v.Message) }
func (EmailValidator) sealed() {}

// RegexValidator requires the pattern to match at the start of the answer.
type RegexValidator struct {
	Message string
	Regex   string
}

func (RegexValidator) Kind() ValidatorKind { return ValidatorRegex }
func (v RegexValidator) ErrorMessage() string { return messageOrDefault(v.Message) }
func (RegexValidator) sealed() {}

// ExpressionValidator evaluates a boolean expression over all answers.
type ExpressionValidator struct {
	Message    string
	Expression string
}

func (ExpressionValidator) Kind() ValidatorKind { return ValidatorExpression }
func (v ExpressionValidator) ErrorMessage() string { return messageOrDefault(v.Message) }
func (ExpressionValidator) sealed() {}

// ValidatorAttributes returns the wire attributes of a validator in
// declaration order, keyed by snake_case name.
func ValidatorAttributes(v Validator) []Attribute {
	attrs := []Attribute{
		{Name: "kind", Value: string(v.Kind())},
		{Name: "message", Value: v.ErrorMessage()},
	}
	switch typed := v.(type) {
	case TextValidator:
		attrs = append(attrs,
			Attribute{Name: "max_length", Value: typed.MaxLength},
			Attribute{Name: "min_length", Value: typed.MinLength},
			Attribute{Name: "allow_digits", Value: typed.AllowDigits()},
		)
	case NumericValidator:
		attrs = append(attrs,
			Attribute{Name: "max_value", Value: typed.MaxValue},
			Attribute{Name: "min_value", Value: typed.MinValue},
		)
	case RegexValidator:
		attrs = append(attrs, Attribute{Name: "regex", Value: typed.Regex})
	case ExpressionValidator:
		attrs = append(attrs, Attribute{Name: "expression", Value: typed.Expression})
	}
	return attrs
}
