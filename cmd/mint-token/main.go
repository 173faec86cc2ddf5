// Command mint-token issues an admin bearer token for the editor surface.
// It is used to bootstrap access in environments without an external
// identity provider.
//
// Usage:
//
//	mint-token --subject=admin@example.com [--ttl=24h]
//
// Requires AUTH_JWT_SECRET (and optionally AUTH_JWT_ISSUER) to be set with
// the same values the server uses.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aiusecase/catalog-backend/internal/auth"
)

func main() {
	subject := flag.String("subject", "", "token subject (admin email or name)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "Usage: mint-token --subject=admin@example.com [--ttl=24h]")
		os.Exit(1)
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if len(secret) < 32 {
		log.Fatal("AUTH_JWT_SECRET environment variable must be set (at least 32 characters)")
	}

	issuer := os.Getenv("AUTH_JWT_ISSUER")
	if issuer == "" {
		issuer = "aicatalog"
	}

	manager := auth.NewJWTManager(secret, issuer)
	token, err := manager.GenerateAccessToken(*subject, auth.RoleAdmin, *ttl)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
