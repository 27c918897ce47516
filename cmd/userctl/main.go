package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtroode/userdesk-server/internal/client"
	"github.com/dtroode/userdesk-server/internal/config"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type cli struct {
	apiURL  string
	token   string
	timeout time.Duration
	out     io.Writer
}

func (c *cli) client() *client.Client {
	opts := []client.Option{}
	if c.token != "" {
		opts = append(opts, client.WithToken(c.token))
	}
	return client.New(c.apiURL, opts...)
}

func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

// print writes the envelope indented. The envelope of a failed call is
// printed too before the error is returned.
func (c *cli) print(env *client.Envelope, callErr error) error {
	if env != nil {
		b, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render response: %w", err)
		}
		fmt.Fprintln(c.out, string(b))
	}
	return callErr
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{
		apiURL:  envOr("USERDESK_API_URL", "http://localhost:5000"),
		token:   os.Getenv("USERDESK_TOKEN"),
		timeout: 30 * time.Second,
		out:     out,
	}

	root := &cobra.Command{
		Use:           "userctl",
		Short:         "Command line client for the users API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotenv(".env")
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", c.apiURL, "base URL of the API (env USERDESK_API_URL)")
	root.PersistentFlags().StringVar(&c.token, "token", c.token, "bearer token (env USERDESK_TOKEN)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", c.timeout, "per command timeout")

	root.AddCommand(
		newListCmd(c),
		newGetCmd(c),
		newCreateCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newImportCmd(c),
		newTokenCmd(c),
	)

	return root
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			return c.print(c.client().List(ctx))
		},
	}
}

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			return c.print(c.client().Get(ctx, args[0]))
		},
	}
}

func newCreateCmd(c *cli) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user from a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, data)
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			return c.print(c.client().Create(ctx, doc))
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "JSON document, or - to read stdin")
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Overwrite the profile of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, data)
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			return c.print(c.client().Update(ctx, args[0], doc))
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "JSON document, or - to read stdin")
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			return c.print(c.client().Delete(ctx, args[0]))
		},
	}
}

// readDocument returns the --data value as raw JSON so label values and
// numbers reach the server untouched.
func readDocument(cmd *cobra.Command, data string) (json.RawMessage, error) {
	raw := []byte(data)
	if data == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = b
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("--data is required")
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("--data is not valid JSON")
	}

	return raw, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
