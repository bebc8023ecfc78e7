package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewTargetValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("target_name", nameValidator),
		},
	}
}

func NewStrategyValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("strategy_kind", strategyKindValidator),
		},
	}
}

func NewScenarioValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("scenario_name", nameValidator),
		},
		{
			Rule: registerFn("strategy_kind", strategyKindValidator),
		},
		{
			Rule: registerFn("targetId", uuidValidator),
		},
	}
}
