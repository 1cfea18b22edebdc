// Command storefront is a terminal storefront client for the shop API.
// Run without arguments to open the interactive shopping interface.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront/cmd/storefront/shop"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/listing"
	"storefront/internal/logging"
	"storefront/internal/search"
	"storefront/internal/session"
	"storefront/internal/toast"
)

var (
	// Global flags
	cfgPath string
	apiURL  string
	verbose bool

	// Logger for non-interactive subcommands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Terminal storefront for the shop API",
	Long: `storefront is a terminal client for browsing a remote shop.

It talks to the shop's REST API for categories, products, and accounts,
keeps the shopping cart locally for the session, and persists your login
across runs.

Run without arguments to open the interactive shopping interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "storefront" && cmd.CalledAs() == "storefront" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStorefront()
	},
}

// statusCmd shows the resolved configuration and session state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and session status",
	RunE:  showStatus,
}

// whoamiCmd prints the signed-in account
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  showWhoami,
}

// logoutCmd clears the persisted session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	RunE:  runLogout,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "storefront.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "override the shop API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openSession(cfg *config.Config) (*session.Store, *session.Accessor, error) {
	store, err := session.NewStore(cfg.Session.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}
	accessor := session.NewAccessor(store, cfg.API.BaseURL, cfg.GetAPITimeout())
	return store, accessor, nil
}

func runStorefront() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(logging.Options{
		Dir:       cfg.Logging.Dir,
		Level:     cfg.Logging.Level,
		DebugMode: cfg.Logging.DebugMode || verbose,
	}); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer logging.CloseAll()
	logging.Boot("storefront %s starting, api=%s", cfg.Version, cfg.API.BaseURL)

	store, accessor, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Fill in cached identity from the token if an old session left gaps
	accessor.EnsureUserCached()

	client := catalog.NewClient(cfg.API.BaseURL, cfg.GetAPITimeout())
	query := search.NewStore()
	notifier := toast.NewNotifierWithTimeout(cfg.GetToastTimeout())
	defer notifier.Clear()

	deps := shop.Deps{
		Config:     cfg,
		Client:     client,
		Cart:       cart.NewStore(),
		Query:      query,
		Session:    accessor,
		Toasts:     notifier,
		Products:   listing.NewProductList(client, query, cfg.Listing.ProductsPerPage),
		Categories: listing.NewCategoryBrowser(client, query, cfg.Listing.CategoryPerPage),
	}

	// Reload config edits made while the app is running. Only logging
	// picks them up live; the API client keeps its startup base URL.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watcher, werr := config.NewWatcher(cfgPath, func(updated *config.Config) {
		logging.Boot("configuration reloaded from %s", cfgPath)
	}); werr == nil {
		if err := watcher.Start(ctx); err == nil {
			defer watcher.Stop()
		}
	}

	return shop.Run(deps)
}

func showStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, accessor, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("status requested",
		zap.String("api_url", cfg.API.BaseURL),
		zap.String("db_path", cfg.Session.DatabasePath),
	)

	fmt.Printf("storefront %s\n\n", cfg.Version)
	fmt.Printf("  API:            %s\n", cfg.API.BaseURL)
	fmt.Printf("  API timeout:    %s\n", cfg.GetAPITimeout())
	fmt.Printf("  Session store:  %s\n", cfg.Session.DatabasePath)
	fmt.Printf("  Products/page:  %d\n", cfg.Listing.ProductsPerPage)
	fmt.Printf("  Category/page:  %d\n", cfg.Listing.CategoryPerPage)
	fmt.Printf("  Log dir:        %s (level %s)\n", cfg.Logging.Dir, cfg.Logging.Level)

	if accessor.IsLoggedIn() {
		fmt.Printf("\nSigned in as %s (%s)\n", accessor.Email(), accessor.Role())
	} else {
		fmt.Println("\nNot signed in")
	}
	return nil
}

func showWhoami(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, accessor, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if !accessor.IsLoggedIn() {
		fmt.Println("Not signed in")
		return nil
	}

	accessor.EnsureUserCached()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetAPITimeout())
	defer cancel()
	if _, err := accessor.CurrentUser(ctx); err != nil {
		logger.Warn("profile refresh failed, showing cached identity", zap.Error(err))
	}

	fmt.Printf("Name:  %s\n", accessor.Name())
	fmt.Printf("Email: %s\n", accessor.Email())
	fmt.Printf("Role:  %s\n", accessor.Role())
	if phone := accessor.Phone(); phone != "" {
		fmt.Printf("Phone: %s\n", phone)
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, accessor, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if !accessor.IsLoggedIn() {
		fmt.Println("Not signed in")
		return nil
	}

	email := accessor.Email()
	if err := accessor.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	logger.Info("session cleared", zap.String("email", email))
	fmt.Println("Signed out")
	return nil
}
