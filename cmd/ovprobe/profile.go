package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(newProfileCmd())
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <file.yaml>",
		Short: "Run the scenarios listed in a YAML profile",
		Long: `The profile command reads a list of scenarios from a YAML file and runs
each one like the reserve command, one after another.

Example profile:
  scenarios:
    - name: small
      count: 4096
      fill: 4096
    - name: sparse
      count: 1000000000
      fill: 1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProfile(args[0])
			if err != nil {
				return err
			}
			results := make([]scenarioResult, 0, len(p.Scenarios))
			for _, s := range p.Scenarios {
				res, err := runScenario(s)
				if err != nil {
					return err
				}
				results = append(results, res)
			}
			return printResults(results)
		},
	}
}

// profile is a batch of scenarios.
type profile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

type scenario struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
	Fill  int    `yaml:"fill"`
}

var (
	errEmptyProfile = errors.New("profile has no scenarios")
	errBadScenario  = errors.New("invalid scenario")
)

func (s scenario) validate() error {
	switch {
	case s.Count < 0:
		return fmt.Errorf("%w %q: negative count %d", errBadScenario, s.Name, s.Count)
	case s.Fill < 0:
		return fmt.Errorf("%w %q: negative fill %d", errBadScenario, s.Name, s.Fill)
	case s.Fill > s.Count:
		return fmt.Errorf("%w %q: fill %d exceeds count %d", errBadScenario, s.Name, s.Fill, s.Count)
	}
	return nil
}

func loadProfile(path string) (*profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (*profile, error) {
	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if len(p.Scenarios) == 0 {
		return nil, errEmptyProfile
	}
	for i := range p.Scenarios {
		if p.Scenarios[i].Name == "" {
			p.Scenarios[i].Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if err := p.Scenarios[i].validate(); err != nil {
			return nil, err
		}
	}
	return &p, nil
}
