package config

import "os"

func IsDebug() bool {
	return os.Getenv("SAGE_DEBUG") == "1"
}
