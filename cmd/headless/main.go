package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/alexisbeaulieu97/headless/internal/components"
	"github.com/alexisbeaulieu97/headless/internal/logger"
	"github.com/alexisbeaulieu97/headless/internal/primitive"
)

func main() {
	human := term.IsTerminal(int(os.Stderr.Fd()))
	log, err := logger.New(logger.Options{Level: "info", HumanReadable: human, Writer: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	registry := primitive.NewRegistry(log)
	if err := components.RegisterDefaults(registry, nil); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register primitives: %v\n", err)
		os.Exit(1)
	}

	app := &appContext{registry: registry, log: log}

	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
