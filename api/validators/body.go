package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
)

// DefaultMaxMemory bounds in-memory multipart parsing; larger parts spill to disk.
const DefaultMaxMemory = 10 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// FormBinder is implemented by request types that can be filled from
// url-encoded or multipart form values.
type FormBinder interface {
	BindForm(values url.Values)
}

// DecodeBody decodes JSON or form bodies into dest and validates it.
func DecodeBody(r *http.Request, dest any) error {
	switch mediaType(r) {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return DecodeFormBody(r, dest)
	default:
		return DecodeJSONBody(r, dest)
	}
}

func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	return Struct(dest)
}

// DecodeFormBody parses url-encoded or multipart bodies and binds them through FormBinder.
func DecodeFormBody(r *http.Request, dest any) error {
	binder, ok := dest.(FormBinder)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "form bodies are not supported for this request")
	}
	if err := ParseForm(r); err != nil {
		return err
	}
	binder.BindForm(r.PostForm)
	return Struct(dest)
}

// ParseForm populates r.PostForm for either form encoding.
func ParseForm(r *http.Request) error {
	var err error
	if mediaType(r) == "multipart/form-data" {
		err = r.ParseMultipartForm(DefaultMaxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body").WithDetails(map[string]any{"error": err.Error()})
	}
	return nil
}

// Struct runs the shared validator against dest.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must be a number"
	}
	return "is invalid"
}
