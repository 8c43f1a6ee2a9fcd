package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/urugendo/internal/client/api"
	"github.com/iudanet/urugendo/internal/client/auth"
	"github.com/iudanet/urugendo/internal/client/cli"
	"github.com/iudanet/urugendo/internal/client/iocli"
	"github.com/iudanet/urugendo/internal/client/storage/boltdb"
	"github.com/iudanet/urugendo/internal/client/translate"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "urugendo-client.db", "Path to local session database")
	lang := flag.String("lang", "", "Display language code, e.g. fr or sw")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]
	ctx := context.Background()

	// Открываем локальное хранилище сессии
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// 1. Сессия владеет токенами и передается в транспорт явно
	session := auth.NewSession(boltStorage)
	apiClient := api.NewClient(*serverURL, api.WithTokenSource(session))
	authService := auth.NewService(apiClient, session)

	// 2. Восстанавливаем сессию до выполнения команды
	authService.Bootstrap(ctx)

	// 3. Переводчик нужен только при заданном --lang
	var translator *translate.Service
	if *lang != "" {
		translator = translate.NewService(translate.Config{
			Endpoint: os.Getenv("URUGENDO_TRANSLATOR_ENDPOINT"),
			Key:      os.Getenv("URUGENDO_TRANSLATOR_KEY"),
			Region:   os.Getenv("URUGENDO_TRANSLATOR_REGION"),
		})
	}

	c := cli.New(iocli.NewStdio(), apiClient, authService, translator, *lang)
	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("Urugendo Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
