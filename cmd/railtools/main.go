package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mamadbah2/railtools/internal/cli"
	"github.com/mamadbah2/railtools/pkg/clients/railtools"
)

const defaultURL = "http://localhost:8080"

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("RAILTOOLS_URL")
	if baseURL == "" {
		baseURL = defaultURL
	}

	if err := cli.NewRootCmd(railtools.NewClient(baseURL)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
