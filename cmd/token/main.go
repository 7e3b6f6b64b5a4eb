// Command token は API クライアント向けの Bearer トークンを発行します。
//
//	JWT_SECRET=... go run ./cmd/token -sub mobile-app -ttl 720h
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	jwtmw "chart_backend/internal/platform/jwt"
)

func main() {
	sub := flag.String("sub", "", "client id stored in the sub claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Fatalf("%s is not set", jwtmw.EnvKeyJWTSecret)
	}
	if *ttl <= 0 {
		log.Fatal("-ttl must be positive")
	}

	token, err := jwtmw.NewGenerator(secret, *ttl).GenerateToken(*sub)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
