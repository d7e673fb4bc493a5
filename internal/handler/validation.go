package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"socialfeed/internal/domain"
)

const dateLayout = "2006-01-02"

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// requestValidator checks DTO tags and reports the JSON field names
type requestValidator struct {
	v   *validator.Validate
	now func() time.Time
}

func newRequestValidator(now func() time.Time) *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rv := &requestValidator{v: v, now: now}
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.After(rv.now())
	})
	return rv
}

// Struct validates s and converts the first failure to a *domain.ValidationError
func (rv *requestValidator) Struct(s interface{}) error {
	err := rv.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.ValidationError{Message: err.Error()}
	}

	fe := verrs[0]
	return &domain.ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "numeric":
		return "must contain only digits"
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", fe.Param())
	case "notfuture":
		return "must not be in the future"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// decodeJSON reads a bounded JSON body into dst, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &domain.ValidationError{Message: "invalid request body: " + err.Error()}
	}
	return nil
}
