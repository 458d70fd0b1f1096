package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/shipapi/internal/auth"
	"github.com/fivetwenty-io/shipapi/internal/constants"
)

// Config represents the persisted CLI configuration.
type Config struct {
	API    string `json:"api,omitempty"     yaml:"api,omitempty"     mapstructure:"api"`
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
	Output string `json:"output,omitempty"  yaml:"output,omitempty"  mapstructure:"output"`
}

var configKeys = []string{"api", "api_key", "output"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the shipapi config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func loadConfig() *Config {
	return &Config{
		API:    viper.GetString("api"),
		APIKey: viper.GetString("api_key"),
		Output: viper.GetString("output"),
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration. The API key is masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = auth.Mask(config.APIKey)

			return render(cmd.OutOrStdout(), config, func(table *tablewriter.Table) error {
				table.Header("Key", "Value")
				_ = table.Append("api", valueOr(config.API, constants.DefaultAPIEndpoint))
				_ = table.Append("api_key", valueOr(config.APIKey, NotAvailable))
				_ = table.Append("output", valueOr(config.Output, OutputFormatTable))
				_ = table.Append("config_file", valueOr(viper.ConfigFileUsed(), NotAvailable))

				return nil
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Persist a configuration value. Keys: " + strings.Join(configKeys, ", "),
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := strings.ToLower(args[0]), args[1]

			known := false

			for _, k := range configKeys {
				known = known || k == key
			}

			if !known {
				return fmt.Errorf("%w: unknown key %q", constants.ErrInvalidConfigKey, key)
			}

			viper.Set(key, value)

			err := saveConfig()
			if err != nil {
				return err
			}

			display := value
			if key == "api_key" {
				display = auth.Mask(value)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, display)

			return nil
		},
	}
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".shipapi")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	err := viper.WriteConfigAs(configFile)
	if err != nil {
		return fmt.Errorf("%w: %w", constants.ErrConfigNotWritable, err)
	}

	err = os.Chmod(configFile, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("%w: %w", constants.ErrConfigNotWritable, err)
	}

	return nil
}
