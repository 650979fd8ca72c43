package config

import (
	"os"
	"strings"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(development)) {
	case "", "0", "false", "no":
		return false
	}
	return true
}
