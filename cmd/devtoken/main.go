// Command devtoken mints an identity token for local testing against the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/caffeineveins/internal/users"
	"github.com/angelmondragon/caffeineveins/pkg/auth"
	"github.com/angelmondragon/caffeineveins/pkg/config"
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "devtoken", Output: os.Stderr})

	username := flag.String("user", users.DefaultAdmin, "username carried by the token")
	roleFlag := flag.String("role", string(enums.UserRoleAdmin), "role carried by the token (admin|customer)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		logg.Warn(context.Background(), "refusing to mint tokens in prod")
		os.Exit(1)
	}

	role, err := enums.ParseUserRole(*roleFlag)
	if err != nil {
		logg.Error(context.Background(), "invalid role", err)
		os.Exit(2)
	}

	token, err := auth.MintIdentityToken(cfg.JWT, time.Now(), auth.IdentityPayload{Username: *username, Role: role})
	if err != nil {
		logg.Error(context.Background(), "failed to mint token", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
