package evalbuilder

import (
	"errors"
	"fmt"

	material "github.com/ChizhovVadim/CounterLite/pkg/eval/material"
	pst "github.com/ChizhovVadim/CounterLite/pkg/eval/pst"
)

var ErrUnknownEval = errors.New("unknown eval")

// Names lists the evaluators Get accepts. The empty name selects pst.
var Names = []string{"material", "pst"}

func Get(key string) (func() interface{}, error) {
	switch key {
	case "", "pst":
		return func() interface{} {
			return pst.NewEvaluationService()
		}, nil
	case "material":
		return func() interface{} {
			return material.NewEvaluationService()
		}, nil
	}
	return nil, fmt.Errorf("%w %v", ErrUnknownEval, key)
}
