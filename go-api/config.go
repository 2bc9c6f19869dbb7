package main

import "os"

type Config struct {
	DatabaseURL  string
	JWTSecret    string
	CookieName   string
	CookieSecure bool
	CORSOrigin   string
	Port         string
}

func loadConfig() Config {
	return Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    getenv("JWT_SECRET", "dev-only-secret"),
		CookieName:   getenv("COOKIE_NAME", "asana_auth"),
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
		CORSOrigin:   getenv("CORS_ORIGIN", "http://localhost:5173"),
		Port:         getenv("PORT", "5000"),
	}
}
