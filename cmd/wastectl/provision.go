package main

import (
	"fmt"
	"strings"

	"github.com/localnerve/wastedash/internal/services"
	"github.com/spf13/cobra"
)

var provisionFlags = struct {
	slug           string
	name           string
	description    string
	logo           string
	primaryColor   string
	secondaryColor string
	subdomain      string
	contactEmail   string
	contactPhone   string
	address        string
	features       []string
	settings       []string
}{}

func newProvisionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create a tenant with its feature flags and setting overrides",
		Example: `  wastectl provision --slug acme --name "Acme Recycling" --feature waste --feature water \
    --setting currency=USD`,
		Args: cobra.NoArgs,
		RunE: provisionRun,
	}

	flags := cmd.Flags()
	flags.StringVar(&provisionFlags.slug, "slug", "", "URL-safe tenant identifier")
	flags.StringVar(&provisionFlags.name, "name", "", "display name")
	flags.StringVar(&provisionFlags.description, "description", "", "description")
	flags.StringVar(&provisionFlags.logo, "logo", "", "logo URL")
	flags.StringVar(&provisionFlags.primaryColor, "primary-color", "", "primary brand color (#rrggbb)")
	flags.StringVar(&provisionFlags.secondaryColor, "secondary-color", "", "secondary brand color (#rrggbb)")
	flags.StringVar(&provisionFlags.subdomain, "subdomain", "", "subdomain")
	flags.StringVar(&provisionFlags.contactEmail, "contact-email", "", "contact email")
	flags.StringVar(&provisionFlags.contactPhone, "contact-phone", "", "contact phone")
	flags.StringVar(&provisionFlags.address, "address", "", "postal address")
	flags.StringSliceVar(&provisionFlags.features, "feature", nil, "feature to enable ("+strings.Join(services.FeatureCatalog, ", ")+"); repeatable")
	flags.StringArrayVar(&provisionFlags.settings, "setting", nil, "setting override as key=value; repeatable")
	_ = cmd.MarkFlagRequired("slug")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseSettings(pairs []string) (map[string]string, error) {
	settings := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("setting %q is not key=value", pair)
		}
		settings[strings.TrimSpace(key)] = value
	}
	return settings, nil
}

func provisionRun(cmd *cobra.Command, args []string) error {
	settings, err := parseSettings(provisionFlags.settings)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	tenant, err := e.registry.Provision(ctx, services.ProvisionInput{
		Slug:           provisionFlags.slug,
		Name:           provisionFlags.name,
		Description:    optional(provisionFlags.description),
		Logo:           optional(provisionFlags.logo),
		PrimaryColor:   optional(provisionFlags.primaryColor),
		SecondaryColor: optional(provisionFlags.secondaryColor),
		Subdomain:      optional(provisionFlags.subdomain),
		ContactEmail:   optional(provisionFlags.contactEmail),
		ContactPhone:   optional(provisionFlags.contactPhone),
		Address:        optional(provisionFlags.address),
		Features:       provisionFlags.features,
		Settings:       settings,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id:        %d\n", tenant.ID)
	fmt.Fprintf(out, "slug:      %s\n", tenant.Slug)
	fmt.Fprintf(out, "dashboard: %s\n", services.DashboardURL(tenant.Slug))
	return nil
}
