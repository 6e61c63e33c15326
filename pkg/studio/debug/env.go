package debug

import (
	"os"
	"strconv"
)

const (
	DebugShowSetupKey = "DEBUG_SHOW_SETUP"
	DebugGinKey       = "DEBUG_GIN"
)

func isSet(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func isDebugShowSetupSet() bool {
	return isSet(DebugShowSetupKey)
}

func isDebugGinSet() bool {
	return isSet(DebugGinKey)
}
