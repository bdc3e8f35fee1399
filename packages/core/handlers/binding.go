package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// SetupValidator makes validation errors report json field names.
func SetupValidator() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// bindBody binds a JSON or form body into obj. Failures come back as a
// *services.ValidationError listing every bad field.
func bindBody(c *gin.Context, obj any) error {
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		// empty body: report the missing fields
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}
	return bindError(err)
}

func bindError(err error) *services.ValidationError {
	verr := &services.ValidationError{}

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			addFieldError(verr, fe)
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = services.SchemaField
		}
		verr.Add(field, models.ErrInvalidValue, invalidTypeMessage(typeErr.Type.Kind()))
	case errors.As(err, &numErr):
		verr.Add(services.SchemaField, models.ErrInvalidValue, "Not a valid integer.")
	default:
		verr.Add(services.SchemaField, models.ErrInvalidValue, "Invalid input.")
	}

	return verr
}

func addFieldError(verr *services.ValidationError, fe validator.FieldError) {
	switch fe.Tag() {
	case "required":
		verr.Add(fe.Field(), models.ErrMissingRequiredField, services.MsgMissingRequired)
	case "min":
		verr.Add(fe.Field(), models.ErrOutOfRangeValue, fmt.Sprintf("Must be at least %s.", fe.Param()))
	case "max":
		if fe.Kind() == reflect.String {
			verr.Add(fe.Field(), models.ErrOutOfRangeValue, fmt.Sprintf("Longer than maximum length %s.", fe.Param()))
			return
		}
		verr.Add(fe.Field(), models.ErrOutOfRangeValue, fmt.Sprintf("Must be at most %s.", fe.Param()))
	default:
		verr.Add(fe.Field(), models.ErrInvalidValue, "Invalid value.")
	}
}

func invalidTypeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return "Not a valid integer."
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Not a valid boolean."
	default:
		return "Invalid value."
	}
}

// parseTimestamp parses an optional wire timestamp. A bad value is recorded
// on verr.
func parseTimestamp(verr *services.ValidationError, field string, value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}

	t, err := models.ParseTimestamp(*value)
	if err != nil {
		verr.Add(field, models.ErrInvalidValue, "Not a valid datetime.")
		return nil
	}
	return &t
}

func queryInt(c *gin.Context, verr *services.ValidationError, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(key, models.ErrInvalidValue, "Not a valid integer.")
		return def
	}
	return v
}

func queryBool(c *gin.Context, verr *services.ValidationError, key string, def bool) bool {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		verr.Add(key, models.ErrInvalidValue, "Not a valid boolean.")
		return def
	}
	return v
}
