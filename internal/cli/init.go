package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/edgesplit/edgesplit/internal/bucket"
	"github.com/edgesplit/edgesplit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a starter configuration file",
	Long: `Walk through creating a test configuration file: test name, bucket
labels and a weight ratio. The resulting file is validated before it is
written, so 'init' can never produce a config the server would reject.

Example:
  edgesplit init --config ab_config.json`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("%s exists, overwrite", configPath),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			if err == promptui.ErrInterrupt || err == promptui.ErrAbort {
				os.Exit(0)
			}
			return err
		}
	}

	name, rt, err := promptTest()
	if err != nil {
		return err
	}

	// Validate through the same path the server uses.
	raw := bucket.RawConfig{
		Active: []string{name},
		Tests:  map[string]bucket.RawTest{name: *rt},
	}
	if _, err := bucket.Build(raw); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}

	if err := writeConfigFile(configPath, name, rt); err != nil {
		return err
	}

	fmt.Printf("\nWrote %s\n\n", configPath)
	fmt.Println("Next steps:")
	fmt.Println("  edgesplit validate         Check the config")
	fmt.Printf("  edgesplit simulate %s  Preview the distribution\n", name)
	fmt.Println("  edgesplit serve            Start the decision server")
	return nil
}

func promptTest() (string, *bucket.RawTest, error) {
	namePrompt := promptui.Prompt{
		Label: "Test name",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("name must not be empty")
			}
			if strings.ContainsAny(s, "&=,") {
				return fmt.Errorf("name must not contain '&', '=' or ','")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return "", nil, promptErr(err)
	}

	bucketsPrompt := promptui.Prompt{
		Label: "Bucket labels (comma separated)",
		Validate: func(s string) error {
			if len(splitTrim(s)) < 2 {
				return fmt.Errorf("need at least 2 buckets, e.g. \"control, variant\"")
			}
			return nil
		},
	}
	bucketsRaw, err := bucketsPrompt.Run()
	if err != nil {
		return "", nil, promptErr(err)
	}
	buckets := splitTrim(bucketsRaw)

	weightPrompt := promptui.Prompt{
		Label:   fmt.Sprintf("Weight ratio for %d buckets", len(buckets)),
		Default: strings.TrimSuffix(strings.Repeat("1:", len(buckets)), ":"),
		Validate: func(s string) error {
			_, err := bucket.ParseWeights(s, len(buckets))
			return err
		},
	}
	weight, err := weightPrompt.Run()
	if err != nil {
		return "", nil, promptErr(err)
	}

	return strings.TrimSpace(name), &bucket.RawTest{Buckets: buckets, Weight: weight}, nil
}

func promptErr(err error) error {
	if err == promptui.ErrInterrupt {
		os.Exit(0)
	}
	return err
}

func splitTrim(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeConfigFile(path, name string, rt *bucket.RawTest) error {
	doc := map[string]interface{}{
		"tests": name,
		name: map[string]interface{}{
			"buckets": rt.Buckets,
			"weight":  rt.Weight,
		},
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	// Re-read through the normal loader as a final sanity check.
	if _, err := config.LoadCatalog(path); err != nil {
		return fmt.Errorf("written config failed validation: %w", err)
	}
	return nil
}
