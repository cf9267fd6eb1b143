package bapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// FieldError is a single rejected field of a request.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports request input that did not pass decoding or validation. It is rendered with
// business code 422.
type ValidationError struct {
	Fields []FieldError
}

// Summary joins all field errors as "<field>: <reason>" separated by "; ".
func (e *ValidationError) Summary() string {
	return strings.Join(lo.Map(e.Fields, func(fe FieldError, _ int) string {
		return fe.Field + ": " + fe.Reason
	}), "; ")
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Summary() }

// AsValidationError uses errors.As to look for a [*ValidationError] in the chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	return v
}

// Bind decodes the JSON request body into 'v' (a pointer to a struct) and validates it against its
// `validate` tags.
func Bind(r *http.Request, v any) error {
	if err := decodeBody(r, v); err != nil {
		return err
	}

	return validateStruct(v, "")
}

// BindSlice decodes a JSON array body and validates every element. Field names of reported errors are
// prefixed with the element index.
func BindSlice[T any](r *http.Request) ([]T, error) {
	var items []T
	if err := decodeBody(r, &items); err != nil {
		return nil, err
	}

	var fields []FieldError
	for i := range items {
		err := validateStruct(&items[i], strconv.Itoa(i))
		if verr, ok := AsValidationError(err); ok {
			fields = append(fields, verr.Fields...)
		} else if err != nil {
			return nil, err
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return items, nil
}

// PathInt parses the path value 'name' as an integer that must be at least 'minimum'.
func PathInt(r *http.Request, name string, minimum int) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, invalid(name, "value is not a valid integer")
	}

	if n < minimum {
		return 0, invalid(name, fmt.Sprintf("ensure this value is greater than or equal to %d", minimum))
	}

	return n, nil
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return invalid("body", "field required")
	}

	err := json.NewDecoder(r.Body).Decode(v)

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return invalid("body", "field required")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return invalid(field, "value is not a valid "+kindName(typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return invalid("body", "invalid JSON")
	default:
		return fmt.Errorf("decode request body: %w", err)
	}
}

func validateStruct(v any, prefix string) error {
	err := validate.Struct(v)

	var verrs validator.ValidationErrors
	if err == nil {
		return nil
	} else if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// drop the root struct name, keep the json path below it.
		_, name, _ := strings.Cut(fe.Namespace(), ".")
		if prefix != "" {
			name = prefix + "." + name
		}

		fields = append(fields, FieldError{Field: name, Reason: reason(fe)})
	}

	return &ValidationError{Fields: fields}
}

func reason(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min", "gte":
		if isText {
			return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max", "lte":
		if isText {
			return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' validation", fe.Tag())
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "dict"
	default:
		return t.Kind().String()
	}
}
