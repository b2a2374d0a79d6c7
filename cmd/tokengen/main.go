// Command tokengen prints a bearer token for the write routes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/luislong0/daily-diet-api/config"
	"github.com/luislong0/daily-diet-api/utils"
)

func main() {
	subject := flag.String("sub", "", "token subject, e.g. the client name")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to AUTH_JWT_TTL)")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -sub <name> [-ttl 72h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if cfg.AuthJWTSecret == "" {
		fmt.Fprintln(os.Stderr, "AUTH_JWT_SECRET is not set")
		os.Exit(1)
	}
	lifetime := cfg.AuthJWTTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	tok, err := utils.GenerateJWT(*subject, []byte(cfg.AuthJWTSecret), lifetime)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
