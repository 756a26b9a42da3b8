package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/classview/internal/systems"
)

// detectInputs lists JSON exports in the current directory.
func detectInputs() []string {
	matches, _ := filepath.Glob("*.json")
	return matches
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to classview! Let's configure your project.")
	fmt.Println()

	inputs := detectInputs()
	if len(inputs) > 0 {
		fmt.Printf("Found %d JSON file(s): %s\n\n", len(inputs), strings.Join(inputs, ", "))
	}

	// 1. Default classification system.
	keys := systems.Keys()
	labels := make([]string, len(keys))
	for i, key := range keys {
		p, _ := systems.Lookup(key)
		labels[i] = fmt.Sprintf("%-9s %s", key, p.Title)
	}
	systemPrompt := promptui.Select{
		Label: "Select default classification system",
		Items: labels,
	}
	systemIdx, _, err := systemPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("system selection: %w", err)
	}
	system := keys[systemIdx]

	// 2. Input files.
	defaultInput := "*.json"
	if len(inputs) == 1 {
		defaultInput = inputs[0]
	}
	inputPrompt := promptui.Prompt{
		Label:   "Input exports (comma-separated paths or globs)",
		Default: defaultInput,
	}
	inputStr, err := inputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("input patterns: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for generated pages",
		Default: "site",
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Preview port.
	portPrompt := promptui.Prompt{
		Label:   "Preview server port",
		Default: "8080",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg := DefaultConfig()
	cfg.DefaultSystem = system
	cfg.Serve.Port = port
	for _, in := range splitAndTrim(inputStr) {
		cfg.Targets = append(cfg.Targets, Target{Input: in, System: system, Output: outputDir})
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
