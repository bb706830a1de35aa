package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON decodes and validates the body into dst, turning decoder and
// validator failures into InvalidArgument errors.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		return status.Error(codes.InvalidArgument, fieldMessage(verrs[0]))
	case errors.As(err, &typeErr):
		return status.Errorf(codes.InvalidArgument, "%s: Incorrect type. Expected %s.", typeErr.Field, typeErr.Type)
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return status.Error(codes.InvalidArgument, "JSON parse error.")
	default:
		return status.Error(codes.InvalidArgument, err.Error())
	}
}

func fieldMessage(fe validator.FieldError) string {
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "This field is required."
	case "min":
		if fe.Kind() == reflect.String {
			msg = "This field may not be blank."
		} else {
			msg = fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		} else {
			msg = fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		}
	case "email":
		msg = "Enter a valid email address."
	default:
		msg = "Invalid value."
	}
	return fe.Field() + ": " + msg
}

// looseInt accepts a JSON number or a numeric string, as form-style
// clients send both.
type looseInt struct {
	Set   bool
	Value int
}

func (n *looseInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("A valid integer is required.")
	}
	n.Set = true
	n.Value = v
	return nil
}

// pathID reads a positive integer path parameter. Anything else is a
// missing resource.
func pathID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errNotFound
	}
	return uint(v), nil
}
