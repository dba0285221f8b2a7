package uci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ChizhovVadim/CounterLite/pkg/engine"
)

type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

type BoolOption struct {
	Name  string
	Value *bool
}

func (opt *BoolOption) UciName() string {
	return opt.Name
}

func (opt *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "check", *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*opt.Value = v
	return nil
}

type DifficultyOption struct {
	Name  string
	Value *engine.Difficulty
}

func (opt *DifficultyOption) UciName() string {
	return opt.Name
}

func (opt *DifficultyOption) UciString() string {
	var vars = lo.Map(engine.Difficulties(), func(d engine.Difficulty, _ int) string {
		return "var " + d.String()
	})
	return fmt.Sprintf("option name %v type %v default %v %v",
		opt.Name, "combo", *opt.Value, strings.Join(vars, " "))
}

func (opt *DifficultyOption) Set(s string) error {
	v, err := engine.ParseDifficulty(s)
	if err != nil {
		return err
	}
	*opt.Value = v
	return nil
}
