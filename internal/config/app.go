package config

import (
	"net"
	"os"
	"strings"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// Addr is the listen address built from APP_HOST and APP_PORT.
func Addr() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok {
		port = "8080"
	}
	return net.JoinHostPort(os.Getenv("APP_HOST"), port)
}

// AllowedOrigins lists CORS_ORIGINS, comma separated. Empty means any origin.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
