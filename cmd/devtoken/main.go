package main

import (
	"flag"
	"fmt"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/utils"
	"log"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

// devtoken mints session credentials for the local identity provider and hashes admin
// API keys for APP_ADMIN_API_KEY_HASH.
func main() {
	userID := flag.String("user", "", "user id (sub claim)")
	email := flag.String("email", "", "email claim, required for auto-provisioning")
	name := flag.String("name", "", "display name claim")
	hashKey := flag.String("hash-api-key", "", "print the bcrypt hash of this admin API key and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Version: %s\nTag: %s\n", Version, Tag)
		return
	}

	if *hashKey != "" {
		hash, err := utils.HashAPIKey(*hashKey)
		if err != nil {
			log.Fatalf("Error hashing API key: %v", err)
		}
		fmt.Println(hash)
		return
	}

	if *userID == "" {
		log.Fatal("-user is required")
	}

	internalConfig := config.NewInternalConfig()
	if err := internalConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	token, err := utils.GenerateSessionJWT(models.Principal{
		UserID:      *userID,
		Email:       *email,
		DisplayName: *name,
	}, internalConfig.Identity.LocalJWTSecret, internalConfig.Identity.LocalJWTExpTimeInHour)
	if err != nil {
		log.Fatalf("Error generating token: %v", err)
	}
	fmt.Println(token)
}
