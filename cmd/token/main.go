package main

import (
	"fmt"
	"os"

	"inn/config"
	"inn/infras/jwt"
	"inn/shared/logger"
)

const (
	argLength = 2
)

// Mints a signed operator token for the bulk-update endpoint.
func main() {
	if len(os.Args) < argLength {
		fmt.Fprintln(os.Stderr, "Usage: token <subject>")
		os.Exit(1)
	}

	logger.InitLogger()

	cfg := config.Get()

	token, err := jwt.New(cfg).GenerateAdminToken(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to generate token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
