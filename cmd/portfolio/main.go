package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/goliatone/go-portfolio/cmd/portfolio/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
