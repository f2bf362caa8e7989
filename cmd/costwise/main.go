package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"costwise/internal/app"
	"costwise/internal/catalog"
	costclient "costwise/internal/client"
	"costwise/internal/config"
	"costwise/internal/logging"
	"costwise/internal/store"
	"costwise/internal/types"
	"costwise/internal/wizard"
)

const usageText = `costwise manages recipes and menu items for a restaurant.

Usage:
  costwise <command> [flags]

Commands:
  new          create a recipe or menu item with the guided wizard
  ingredients  list the ingredient catalog
  login        store the API token
  version      print version
  help         show help

Flags:
  -h, --help   show help

Ingredients flags:
  --refresh    refetch the catalog from the server

Examples:
  costwise new
  costwise ingredients --refresh
  costwise login --token <token>
`

const version = "dev"

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	case "new":
		exitOnErr("new", runNew(args[1:]))
	case "ingredients":
		exitOnErr("ingredients", runIngredients(args[1:]))
	case "login":
		exitOnErr("login", runLogin(args[1:]))
	case "version":
		fmt.Println(version)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func exitOnErr(command string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
	os.Exit(1)
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := uiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	apiClient, err := costclient.New(cfg)
	if err != nil {
		return err
	}
	cachePath, err := cfg.ResolveCachePath()
	if err != nil {
		return err
	}
	cache, err := store.NewCatalogStore(cachePath, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	provider := catalog.NewCachedProvider(
		apiClient,
		cache,
		time.Duration(cfg.CatalogTTLMinutes())*time.Minute,
		logger,
	)
	wiz := wizard.New(
		wizard.WithGateway(apiClient),
		wizard.WithCacheInvalidator(cache),
		wizard.WithLogger(logger),
	)
	return app.Run(wiz, provider)
}

func runIngredients(args []string) error {
	fs := flag.NewFlagSet("ingredients", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	refresh := fs.Bool("refresh", false, "refetch the catalog from the server")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel()))

	apiClient, err := costclient.New(cfg)
	if err != nil {
		return err
	}
	cachePath, err := cfg.ResolveCachePath()
	if err != nil {
		return err
	}
	cache, err := store.NewCatalogStore(cachePath, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	provider := catalog.NewCachedProvider(
		apiClient,
		cache,
		time.Duration(cfg.CatalogTTLMinutes())*time.Minute,
		logger,
	)

	ctx := context.Background()
	var ingredients []types.IngredientSummary
	if *refresh {
		ingredients, err = provider.Refresh(ctx)
	} else {
		ingredients, err = provider.ListIngredients(ctx)
	}
	if err != nil {
		return err
	}
	printIngredients(ingredients)
	return nil
}

func runLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	token := fs.String("token", "", "API token (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	value := strings.TrimSpace(*token)
	if value == "" {
		fmt.Fprint(os.Stderr, "token: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		value = strings.TrimSpace(line)
	}
	if value == "" {
		return errors.New("token is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	tokenPath, err := cfg.ResolveTokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(tokenPath), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(tokenPath, []byte(value+"\n"), 0o600); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "token written to %s\n", tokenPath)
	return nil
}

func printIngredients(ingredients []types.IngredientSummary) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tUNIT\tUNIT COST")
	for _, ing := range ingredients {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%.2f\n", ing.ID, ing.Name, ing.Unit, ing.UnitCost)
	}
	_ = writer.Flush()
}

// uiLogger logs to a file under the data dir so log lines do not tear the
// terminal UI.
func uiLogger(cfg config.Config) (logging.Logger, func(), error) {
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(filepath.Join(dataDir, "costwise.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(file, logging.ParseLevel(cfg.LogLevel()))
	return logger, func() { _ = file.Close() }, nil
}
