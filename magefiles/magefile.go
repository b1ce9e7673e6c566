//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the server and migrate binaries to ./bin.
func Build() error {
	fmt.Println(">> Building binaries...")
	if err := sh.Run("go", "build", "-o", "bin/server", "./cmd/server"); err != nil {
		return err
	}
	return sh.Run("go", "build", "-o", "bin/migrate", "./cmd/migrate")
}

// Migrate applies pending migrations to DATABASE_URL.
func Migrate() error {
	fmt.Println(">> Applying migrations...")
	return sh.RunV("go", "run", "./cmd/migrate", "up")
}

// Run migrates the database, then starts the server.
func Run() error {
	mg.Deps(Build)
	mg.Deps(Migrate)
	fmt.Println(">> Starting server...")
	return sh.RunV("./bin/server")
}

// Test runs the unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-short", "./...")
}

// Integration runs the tests against a Postgres container (needs Docker).
func Integration() error {
	fmt.Println(">> Running integration tests...")
	return sh.RunWithV(map[string]string{"TEST_INTEGRATION": "1"}, "go", "test", "./...")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println(">> Cleaning...")
	return os.RemoveAll("bin")
}

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
