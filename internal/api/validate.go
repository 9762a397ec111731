package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"checklist/pkg/task"
)

const maxBodyBytes = 1 << 20

type createTaskRequest struct {
	Title       *string `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Timeframe   string  `json:"timeframe" validate:"required,timeframe"`
	DueDate     string  `json:"dueDate" validate:"required,duedate"`
}

func (r createTaskRequest) input() task.CreateInput {
	return task.CreateInput{
		Title:       *r.Title,
		Description: r.Description,
		Timeframe:   task.Timeframe(r.Timeframe),
		DueDate:     r.DueDate,
	}
}

type updateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Completed   *bool   `json:"completed"`
}

func (r updateTaskRequest) input() task.UpdateInput {
	return task.UpdateInput{Title: r.Title, Description: r.Description, Completed: r.Completed}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("timeframe", func(fl validator.FieldLevel) bool {
		return task.Timeframe(fl.Field().String()).Valid()
	})
	v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		return task.ValidDueDate(fl.Field().String())
	})
	return v
}

// decodeAndValidate reads a JSON object body into dst and runs the struct
// rules. Every failure comes back as a ValidationError naming the field.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return decodeError(err)
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ValidationError(describe(verrs))
		}
		return err
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var sizeErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return ValidationError(fmt.Sprintf("body: expected object, received %s", typeErr.Value))
		}
		return ValidationError(fmt.Sprintf("%s: expected %s, received %s", field, jsonKind(typeErr.Type), typeErr.Value))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return ValidationError("body: malformed JSON")
	case errors.As(err, &sizeErr):
		return &Error{Status: http.StatusRequestEntityTooLarge, Message: "Request body too large"}
	}
	return ValidationError("body: " + err.Error())
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return t.Kind().String()
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+": "+message(fe))
	}
	return strings.Join(parts, "; ")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s character(s)", fe.Param())
	case "timeframe":
		return fmt.Sprintf("must be one of daily, monthly, yearly, received %q", fe.Value())
	case "duedate":
		return "must be a date (YYYY-MM-DD) or an RFC 3339 date-time"
	}
	return "failed " + fe.Tag()
}
