package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	composer "github.com/goliatone/go-composer"
	editorcmd "github.com/goliatone/go-composer/internal/commands/editor"
)

var errTenantRequired = errors.New("composer: --tenant is required")

type globalOptions struct {
	configPath string
	verbose    bool
	tenantID   string
	slug       string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:          "composer",
		Short:        "Inspect and edit composed pages",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&opts.tenantID, "tenant", "t", "", "tenant id")
	flags.StringVarP(&opts.slug, "slug", "s", "home", "page slug")

	root.AddCommand(
		configCommand(opts),
		provisionCommand(opts),
		showCommand(opts),
		moveCommand(opts),
		setFieldCommand(opts),
	)
	return root
}

func (o *globalOptions) loadConfig() (composer.Config, error) {
	cfg := composer.DefaultConfig()
	if path := strings.TrimSpace(o.configPath); path != "" {
		loaded, err := composer.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if o.verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = "debug"
		if cfg.Logging.Provider == "" {
			cfg.Logging.Provider = "gologger"
		}
	}
	return cfg, nil
}

func (o *globalOptions) module() (*composer.Module, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return composer.New(cfg)
}

func (o *globalOptions) requireTenant() error {
	if strings.TrimSpace(o.tenantID) == "" {
		return errTenantRequired
	}
	return nil
}

func withModule(opts *globalOptions, fn func(ctx context.Context, module *composer.Module, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := opts.requireTenant(); err != nil {
			return err
		}
		module, err := opts.module()
		if err != nil {
			return err
		}
		defer module.Close(context.Background())
		return fn(cmd.Context(), module, cmd.OutOrStdout())
	}
}

func configCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
}

func provisionCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the default page when it does not exist",
		RunE: withModule(opts, func(ctx context.Context, module *composer.Module, out io.Writer) error {
			doc, err := module.Pages().Provision(ctx, opts.tenantID, opts.slug)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s/%s at version %d with %d components\n", doc.TenantID, doc.Slug, doc.Version, len(doc.Definition))
			return nil
		}),
	}
}

func showCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the ordered components of a page as JSON",
		RunE: withModule(opts, func(ctx context.Context, module *composer.Module, out io.Writer) error {
			list, err := module.Pages().GetPageDefinition(ctx, opts.tenantID, opts.slug)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}),
	}
}

func moveCommand(opts *globalOptions) *cobra.Command {
	var (
		componentID string
		zone        string
		index       int
	)
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a component to a new index and save the page",
		RunE: withModule(opts, func(ctx context.Context, module *composer.Module, out io.Writer) error {
			handlers := module.Commands()
			if err := handlers.MoveComponent.Execute(ctx, editorcmd.MoveComponentCommand{
				TenantID:    opts.tenantID,
				Slug:        opts.slug,
				ComponentID: componentID,
				Zone:        zone,
				Index:       index,
			}); err != nil {
				return err
			}
			if err := handlers.SavePage.Execute(ctx, editorcmd.SavePageCommand{TenantID: opts.tenantID, Slug: opts.slug}); err != nil {
				return err
			}
			fmt.Fprintf(out, "moved %s to index %d\n", componentID, index)
			return nil
		}),
	}
	cmd.Flags().StringVar(&componentID, "component", "", "component id")
	cmd.Flags().StringVar(&zone, "zone", "", "destination zone, defaults to the current one")
	cmd.Flags().IntVar(&index, "index", 0, "destination index")
	_ = cmd.MarkFlagRequired("component")
	return cmd
}

func setFieldCommand(opts *globalOptions) *cobra.Command {
	var (
		blockType string
		variantID string
		path      string
		raw       string
	)
	cmd := &cobra.Command{
		Use:   "set-field",
		Short: "Update one field of a variant payload and save the page",
		RunE: withModule(opts, func(ctx context.Context, module *composer.Module, out io.Writer) error {
			handlers := module.Commands()
			if err := handlers.UpdateVariantField.Execute(ctx, editorcmd.UpdateVariantFieldCommand{
				TenantID:  opts.tenantID,
				Slug:      opts.slug,
				BlockType: blockType,
				VariantID: variantID,
				Path:      path,
				Value:     parseValue(raw),
			}); err != nil {
				return err
			}
			if err := handlers.SavePage.Execute(ctx, editorcmd.SavePageCommand{TenantID: opts.tenantID, Slug: opts.slug}); err != nil {
				return err
			}
			fmt.Fprintf(out, "updated %s/%s %s\n", blockType, variantID, path)
			return nil
		}),
	}
	cmd.Flags().StringVar(&blockType, "type", "", "block type")
	cmd.Flags().StringVar(&variantID, "variant", "default", "variant id")
	cmd.Flags().StringVar(&path, "path", "", "dot path of the field")
	cmd.Flags().StringVar(&raw, "value", "", "new value, parsed as JSON when possible")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

// parseValue decodes JSON literals and falls back to the raw string.
func parseValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}
