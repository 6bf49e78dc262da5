package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"boardcamp-backend/internal/config"
	"boardcamp-backend/internal/security"
)

// Prints a staff access token signed with the configured JWT secret.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	staff := flag.String("staff", "", "Staff member the token is issued to")
	roles := flag.String("roles", "clerk", "Comma-separated staff roles")
	flag.Parse()

	if *staff == "" {
		log.Fatal("-staff is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret (or JWT_SECRET) must be set to issue tokens")
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	ttl := time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, ttl)
	token, err := tokens.GenerateAccessToken(*staff, roleList)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
