package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Problem is a single validation finding on a record.
type Problem struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

func (p Problem) String() string {
	return p.Msg
}

var gameValidator = newGameValidator()

func newGameValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their wire names rather than Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Validate checks the title and the enumerated fields against their domains.
// It is diagnostic only: it runs during import and never blocks editing.
func (g Game) Validate() []Problem {
	err := gameValidator.Struct(g)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Problem{{Field: "", Msg: err.Error()}}
	}

	problems := make([]Problem, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, Problem{
			Field: fe.Field(),
			Msg:   problemMessage(fe),
		})
	}
	return problems
}

func problemMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s %q is invalid", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
