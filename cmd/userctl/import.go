package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fixture is the layout of an import file.
type fixture struct {
	Users []map[string]any `yaml:"users"`
}

func loadFixture(path string) ([]map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return f.Users, nil
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Create every user listed in a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := loadFixture(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := c.context(cmd)
			defer cancel()

			cl := c.client()
			for i, u := range users {
				env, err := cl.Create(ctx, u)
				if err != nil {
					return fmt.Errorf("user %d: %w", i, err)
				}
				fmt.Fprintf(c.out, "%s\n", env.StoreID())
			}

			fmt.Fprintf(c.out, "imported %d users\n", len(users))
			return nil
		},
	}
}
