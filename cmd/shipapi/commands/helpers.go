package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/shipapi/internal/constants"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
	"github.com/fivetwenty-io/shipapi/pkg/shipclient"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	NotAvailable = "N/A"
)

// ClientFactory builds the API client used by commands. Tests replace it.
var ClientFactory = func(config *shipapi.Config) (shipapi.Client, error) {
	return shipclient.New(config)
}

// newClient builds a client from flags, environment and config file.
func newClient(cmd *cobra.Command) (shipapi.Client, error) {
	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	verbose := viper.GetBool("verbose")

	return ClientFactory(&shipapi.Config{
		APIKey:      apiKey,
		APIEndpoint: viper.GetString("api"),
		Debug:       verbose,
		Logger:      NewLogger(cmd.ErrOrStderr(), verbose),
		UserAgent:   constants.DefaultUserAgent,
	})
}

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case "", OutputFormatTable:
		return OutputFormatTable, nil
	case OutputFormatJSON, OutputFormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

// render writes data as JSON or YAML, or calls table for table output.
func render(w io.Writer, data interface{}, table func(*tablewriter.Table) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(data)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)

		return encoder.Encode(data)
	default:
		t := tablewriter.NewWriter(w)

		err := table(t)
		if err != nil {
			return err
		}

		err = t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// parsePriority validates a --priority flag value.
func parsePriority(value string) (shipapi.Priority, error) {
	priority := shipapi.Priority(strings.ToLower(strings.TrimSpace(value)))
	if !priority.Valid() {
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidPriority, value)
	}

	return priority, nil
}

// parseExpiration parses MM/YYYY or MM/YY.
func parseExpiration(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 {
		return 0, 0, constants.ErrInvalidExpiration
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, constants.ErrInvalidExpiration
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 0 {
		return 0, 0, constants.ErrInvalidExpiration
	}

	if len(parts[1]) == 2 {
		year += 2000
	}

	return month, year, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
