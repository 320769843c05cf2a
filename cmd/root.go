package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/hance08/remit/cmd/account"
	"github.com/hance08/remit/cmd/category"
	"github.com/hance08/remit/cmd/draft"
	"github.com/hance08/remit/cmd/incoming"
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/config"
	"github.com/hance08/remit/internal/errhandler"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	actAs   string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	application := &app.App{}
	err := NewRootCmd(application, migrations).ExecuteContext(ctx)

	application.Close()
	stop()

	os.Exit(errhandler.HandleError(err))
}

func NewRootCmd(application *app.App, migrations fs.FS) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "remit",
		Short: "remit sends money between accounts from the command line",
		Long: `remit is a CLI for a personal-finance ledger.

Transfers start as drafts that only the sender can see and edit. Confirming a
draft debits the sender and makes it visible to the receiver, who accepts it
to get credited.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			if actAs != "" {
				cfg.Session.Username = actAs
			}
			return application.Open(cfg, migrations)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVar(&actAs, "as", "", "act as this user instead of the logged in one")

	rootCmd.AddCommand(NewRegisterCmd(application))
	rootCmd.AddCommand(NewLoginCmd(application))
	rootCmd.AddCommand(NewLogoutCmd(application))
	rootCmd.AddCommand(NewWhoamiCmd(application))
	rootCmd.AddCommand(NewInfoCmd(application))
	rootCmd.AddCommand(NewSentCmd(application))

	rootCmd.AddCommand(account.NewAccountCmd(application))
	rootCmd.AddCommand(category.NewCategoryCmd(application))
	rootCmd.AddCommand(draft.NewDraftCmd(application))
	rootCmd.AddCommand(incoming.NewIncomingCmd(application))

	return rootCmd
}

func initConfig() error {
	// A .env file in the working directory may set REMIT_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.AppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if err := createDefaultConfig(appDir); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("REMIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

func setDefaults() {
	defaults := config.NewDefault()

	viper.SetDefault("database.driver", defaults.Database.Driver)
	viper.SetDefault("database.path", "")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("ledger.allow_overdraft", defaults.Ledger.AllowOverdraft)
	viper.SetDefault("ledger.list_limit", defaults.Ledger.ListLimit)
	viper.SetDefault("security.bcrypt_cost", defaults.Security.BcryptCost)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.format", defaults.Log.Format)
	viper.SetDefault("log.file", "")
	viper.SetDefault("session.username", "")
}

func createDefaultConfig(appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// saveSession persists the logged in user to the config file.
func saveSession(username string) error {
	viper.Set("session.username", username)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	cfg.Session.Username = username
	return nil
}
