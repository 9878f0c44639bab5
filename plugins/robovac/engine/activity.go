package engine

import (
	"fmt"

	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

// IsNoError reports whether an error DP value means "no error": nil, false,
// numeric zero, "" or "no_error". The string "0" is an error.
func IsNoError(v any) bool {
	switch e := v.(type) {
	case nil:
		return true
	case bool:
		return !e
	case string:
		return e == "" || e == "no_error"
	default:
		return isNumericZero(v)
	}
}

func isNumericZero(v any) bool {
	switch n := v.(type) {
	case int:
		return n == 0
	case int8:
		return n == 0
	case int16:
		return n == 0
	case int32:
		return n == 0
	case int64:
		return n == 0
	case uint:
		return n == 0
	case uint8:
		return n == 0
	case uint16:
		return n == 0
	case uint32:
		return n == 0
	case uint64:
		return n == 0
	case float32:
		return n == 0
	case float64:
		return n == 0
	default:
		return false
	}
}

// DeriveActivity turns a decoded status and error into an activity.
//
// Precedence: a missing status yields ActivityNone; any real error yields
// ActivityError; a declared activity map is authoritative (misses yield
// ActivityNone); otherwise the legacy label heuristics apply.
func DeriveActivity(status, errorCode any, activities map[string]models.Activity) models.Activity {
	if status == nil || isNumericZero(status) {
		return models.ActivityNone
	}
	if !IsNoError(errorCode) {
		return models.ActivityError
	}
	label := fmt.Sprint(status)
	if activities != nil {
		if activity, ok := activities[label]; ok {
			return activity
		}
		return models.ActivityNone
	}
	switch label {
	case "Charging", "completed":
		return models.ActivityDocked
	case "Recharge":
		return models.ActivityReturning
	case "Sleeping", "standby":
		return models.ActivityIdle
	case "Paused":
		return models.ActivityPaused
	default:
		return models.ActivityCleaning
	}
}
