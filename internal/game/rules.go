// internal/game/rules.go
package game

import (
	"fmt"
	"math"
	"time"
)

// maxRuleMs caps every pacing value.
const maxRuleMs = 60000

// Rules holds the pacing of a game.
type Rules struct {
	MismatchDelayMs           int  `json:"mismatchDelayMs"`           // how long a mismatched pair stays face up
	OpponentTurnDelayMs       int  `json:"opponentTurnDelayMs"`       // pause before the opponent starts a turn
	OpponentFirstFlipDelayMs  int  `json:"opponentFirstFlipDelayMs"`  // pause before the opponent's first flip
	OpponentSecondFlipDelayMs int  `json:"opponentSecondFlipDelayMs"` // pause between the opponent's two flips
	OracleTimeoutMs           int  `json:"oracleTimeoutMs"`           // upper bound on a remote move request
	ForceSmartOpponent        bool `json:"forceSmartOpponent"`        // always play from memory, regardless of difficulty
}

// DefaultRules returns the standard pacing.
func DefaultRules() Rules {
	return Rules{
		MismatchDelayMs:           1000,
		OpponentTurnDelayMs:       500,
		OpponentFirstFlipDelayMs:  600,
		OpponentSecondFlipDelayMs: 700,
		OracleTimeoutMs:           2000,
		ForceSmartOpponent:        false,
	}
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func (r Rules) MismatchDelay() time.Duration           { return ms(r.MismatchDelayMs) }
func (r Rules) OpponentTurnDelay() time.Duration       { return ms(r.OpponentTurnDelayMs) }
func (r Rules) OpponentFirstFlipDelay() time.Duration  { return ms(r.OpponentFirstFlipDelayMs) }
func (r Rules) OpponentSecondFlipDelay() time.Duration { return ms(r.OpponentSecondFlipDelayMs) }
func (r Rules) OracleTimeout() time.Duration           { return ms(r.OracleTimeoutMs) }

// Update overrides the rules present in newRules. Unknown keys are ignored; missing keys keep their value.
func (r *Rules) Update(newRules map[string]interface{}) error {
	assignBool := func(field *bool, key string) error {
		val, exists := newRules[key]
		if !exists || val == nil {
			return nil
		}
		b, ok := val.(bool)
		if !ok {
			return fmt.Errorf("invalid type for %s", key)
		}
		*field = b
		return nil
	}

	assignInt := func(field *int, key string, minVal int) error {
		val, exists := newRules[key]
		if !exists || val == nil {
			return nil
		}
		var n int
		switch v := val.(type) {
		case float64: // JSON numbers decode as float64
			if v != math.Trunc(v) {
				return fmt.Errorf("%s must be a whole number of milliseconds", key)
			}
			if v < float64(minVal) || v > maxRuleMs {
				return fmt.Errorf("%s must be between %d and %d", key, minVal, maxRuleMs)
			}
			n = int(v)
		case int:
			n = v
		default:
			return fmt.Errorf("invalid type for %s", key)
		}
		if n < minVal || n > maxRuleMs {
			return fmt.Errorf("%s must be between %d and %d", key, minVal, maxRuleMs)
		}
		*field = n
		return nil
	}

	if err := assignInt(&r.MismatchDelayMs, "mismatchDelayMs", 0); err != nil {
		return err
	}
	if err := assignInt(&r.OpponentTurnDelayMs, "opponentTurnDelayMs", 0); err != nil {
		return err
	}
	if err := assignInt(&r.OpponentFirstFlipDelayMs, "opponentFirstFlipDelayMs", 0); err != nil {
		return err
	}
	if err := assignInt(&r.OpponentSecondFlipDelayMs, "opponentSecondFlipDelayMs", 0); err != nil {
		return err
	}
	if err := assignInt(&r.OracleTimeoutMs, "oracleTimeoutMs", 1); err != nil {
		return err
	}
	return assignBool(&r.ForceSmartOpponent, "forceSmartOpponent")
}

// ParseRules applies rules on top of current and returns the result. current is not modified.
func ParseRules(rules map[string]interface{}, current Rules) (Rules, error) {
	parsed := current
	err := parsed.Update(rules)
	return parsed, err
}
