package estimation

import "fmt"

type ErrInvalidTargetParameters struct {
	error
}

func NewErrInvalidTargetParameters(field string, value float64, bound string) *ErrInvalidTargetParameters {
	return &ErrInvalidTargetParameters{fmt.Errorf("invalid target parameters: %s=%v must be %s", field, value, bound)}
}

type ErrInvalidStrategyParameters struct {
	error
}

func NewErrInvalidStrategyParameters(field string, value float64) *ErrInvalidStrategyParameters {
	return &ErrInvalidStrategyParameters{fmt.Errorf("invalid strategy parameters: %s=%v must be strictly positive", field, value)}
}
