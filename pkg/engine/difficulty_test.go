package engine

import (
	"errors"
	"testing"
	"time"
)

func TestConfigFor(t *testing.T) {
	var prev SearchConfig
	for i, d := range Difficulties() {
		var config = ConfigFor(d)
		if err := config.Validate(); err != nil {
			t.Error(d, err)
		}
		if config != ConfigFor(d) {
			t.Error(d, "not deterministic")
		}
		if i > 0 {
			if config.MaxDepth <= prev.MaxDepth ||
				config.TimeBudget <= prev.TimeBudget ||
				config.TableCapacity <= prev.TableCapacity {
				t.Error(d, config, prev)
			}
		}
		prev = config
	}
	if ConfigFor(Difficulty(42)) != ConfigFor(Medium) {
		t.Error("unknown difficulty must map to medium")
	}
	if ConfigFor(Max).TimeBudget <= 0 {
		t.Error("max must still be time bounded")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties() {
		var parsed, err = ParseDifficulty(d.String())
		if err != nil || parsed != d {
			t.Error(d, parsed, err)
		}
	}
	if d, err := ParseDifficulty(" HARD "); err != nil || d != Hard {
		t.Error(d, err)
	}
	if _, err := ParseDifficulty("grandmaster"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Error(err)
	}
}

func TestValidate(t *testing.T) {
	var tests = []SearchConfig{
		{MaxDepth: 0, TimeBudget: time.Second, TableCapacity: 1024},
		{MaxDepth: maxHeight, TimeBudget: time.Second, TableCapacity: 1024},
		{MaxDepth: 3, TimeBudget: 0, TableCapacity: 1024},
		{MaxDepth: 3, TimeBudget: time.Second, TableCapacity: 0},
	}
	for _, test := range tests {
		if err := test.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Error(test, err)
		}
	}
}
