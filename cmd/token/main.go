// Command token prints a bearer token for calling the GameBot API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/capitalize-ai/gamebot/internal/config"
	"github.com/capitalize-ai/gamebot/internal/middleware"
)

func main() {
	user := flag.String("user", "", "user the token is issued to")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user <id> [-ttl 24h]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	token, err := middleware.IssueToken(cfg.JWTSecret, *user, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
