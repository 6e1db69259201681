package rtr

import "github.com/rohanthewiz/serr"

// Strategy selects how RegexRouter.Match finds the matched route.
type Strategy int

// Matching strategies.
const (
	// StrategyOffsets runs the combined pattern once and finds the route
	// through the capture offset table recorded at combine time
	StrategyOffsets Strategy = iota

	// StrategyScan runs the combined pattern once and finds the route by
	// counting parentheses and alternations in the combined source
	StrategyScan

	// StrategySequential tries each route's own pattern in registration order
	StrategySequential
)

var strategyNames = [...]string{
	StrategyOffsets:    "offsets",
	StrategyScan:       "scan",
	StrategySequential: "sequential",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return StrategyOffsets, serr.New("unknown match strategy", "strategy", name)
}
