package validator

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
)

var resourceNameValidRegex = regexp.MustCompile("^[a-zA-Z0-9+-_.]+$")

func nameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return resourceNameValidRegex.MatchString(val)
}

func strategyKindValidator(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	switch api.StrategyKind(fl.Field().String()) {
	case api.StrategyKindRehost,
		api.StrategyKindReplatform,
		api.StrategyKindRefactor,
		api.StrategyKindRepurchase,
		api.StrategyKindRetire,
		api.StrategyKindRetain:
		return true
	default:
		return false
	}
}

func uuidValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(uuid.UUID)
	if !ok {
		return false
	}
	return val != uuid.UUID{}
}
