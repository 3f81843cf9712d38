package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"

	"cartaseo/app/internal/infrastructure/auth/jwt"
)

// token issues a bearer token for the mutating HTTP endpoints.
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	flags := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := flags.String("subject", "editor", "token subject")
	role := flags.String("role", "editor", "token role")
	ttl := flags.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := flags.Parse(args); err != nil {
		return eris.Wrap(err, "parsing flags")
	}

	verifier, err := jwt.NewVerifier(os.Getenv("JWT_SECRET"))
	if err != nil {
		return eris.Wrap(err, "JWT_SECRET must be set")
	}

	token, err := verifier.Issue(*subject, *role, *ttl)
	if err != nil {
		return eris.Wrap(err, "issuing token")
	}

	fmt.Println(token)
	return nil
}
