// Package validation проверяет входящие запросы до вызова доменных сервисов.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Problem — ошибки по полям: имя поля в JSON -> сообщения.
type Problem map[string][]string

// Add добавляет сообщение к полю.
func (p Problem) Add(field, message string) {
	p[field] = append(p[field], message)
}

// Empty сообщает, что нарушений нет.
func (p Problem) Empty() bool {
	return len(p) == 0
}

// Fields возвращает имена полей с ошибками в лексикографическом порядке.
func (p Problem) Fields() []string {
	fields := make([]string, 0, len(p))
	for field := range p {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Validator — общий экземпляр go-playground/validator с JSON-именами полей.
type Validator struct {
	validate *validator.Validate
}

// New создаёт Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct проверяет теги `validate` и переводит нарушения в Problem.
func (v *Validator) Struct(req any) Problem {
	problem := Problem{}

	err := v.validate.Struct(req)
	if err == nil {
		return problem
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		problem.Add("request", err.Error())
		return problem
	}
	for _, fe := range fieldErrs {
		problem.Add(fieldName(fe), message(fe))
	}
	return problem
}

// Rule проверяет запрос одного типа.
type Rule[T any] func(T) Problem

// For собирает правило для типа T: теги структуры плюс дополнительные проверки.
// Правила строятся один раз при регистрации маршрутов.
func For[T any](v *Validator, extra ...func(T, Problem)) Rule[T] {
	return func(req T) Problem {
		problem := v.Struct(req)
		for _, check := range extra {
			check(req, problem)
		}
		return problem
	}
}

// fieldName убирает имя корневой структуры: "Request.items[0].quantity" -> "items[0].quantity".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("at least %s %s required", fe.Param(), plural(fe.Param(), "entry is", "entries are"))
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Map || kind == reflect.Array
}

func plural(n, one, many string) string {
	if n == "1" {
		return one
	}
	return many
}
