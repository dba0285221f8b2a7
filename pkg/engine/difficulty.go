package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

var (
	ErrInvalidConfig     = errors.New("invalid search config")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Max
)

var difficultyNames = []string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
	Max:    "max",
}

func (d Difficulty) String() string {
	if d < Easy || d > Max {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

func ParseDifficulty(s string) (Difficulty, error) {
	var index = lo.IndexOf(difficultyNames, strings.ToLower(strings.TrimSpace(s)))
	if index < 0 {
		return Medium, fmt.Errorf("%w %q", ErrUnknownDifficulty, s)
	}
	return Difficulty(index), nil
}

// Difficulties lists every difficulty from the weakest to the strongest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Max}
}

type SearchConfig struct {
	MaxDepth      int
	TimeBudget    time.Duration
	TableCapacity int
}

var difficultyConfigs = [...]SearchConfig{
	Easy:   {MaxDepth: 2, TimeBudget: 250 * time.Millisecond, TableCapacity: 1 << 14},
	Medium: {MaxDepth: 4, TimeBudget: 1 * time.Second, TableCapacity: 1 << 16},
	Hard:   {MaxDepth: 6, TimeBudget: 3 * time.Second, TableCapacity: 1 << 18},
	Max:    {MaxDepth: 10, TimeBudget: 10 * time.Second, TableCapacity: 1 << 20},
}

// ConfigFor maps a difficulty to its search limits. Values outside the enumeration get Medium.
func ConfigFor(d Difficulty) SearchConfig {
	if d < Easy || d > Max {
		d = Medium
	}
	return difficultyConfigs[d]
}

func (c SearchConfig) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth >= maxHeight {
		return fmt.Errorf("%w: max depth %v", ErrInvalidConfig, c.MaxDepth)
	}
	if c.TimeBudget <= 0 {
		return fmt.Errorf("%w: time budget %v", ErrInvalidConfig, c.TimeBudget)
	}
	if c.TableCapacity <= 0 {
		return fmt.Errorf("%w: table capacity %v", ErrInvalidConfig, c.TableCapacity)
	}
	return nil
}
