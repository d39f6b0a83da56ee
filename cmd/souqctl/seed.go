package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/usecase"
)

var sampleListings = []usecase.CreateProductInput{
	{Title: "طماطم طازجة", Category: entity.CategoryAgriculture, Price: 1500, Stock: 40, Location: "الخرطوم"},
	{Title: "عسل سدر", Category: entity.CategoryHomeMade, Price: 8000, Stock: 12, Location: "كسلا"},
	{Title: "Tractor MF 385", Category: entity.CategoryVehicles, Price: 4500000, Stock: 1, Location: "الجزيرة"},
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		adminPhone    string
		adminPassword string
		traderPhone   string
		withListings  bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the first admin and a demo trader with sample listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if adminPassword == "" {
				return fmt.Errorf("--admin-password is required")
			}

			admin, err := ensureUser(a, cmd, usecase.RegisterInput{
				Phone: adminPhone, Name: "Administrator", Password: adminPassword, Role: entity.RoleAdmin,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "admin %s ready\n", admin.ID)

			if !withListings {
				return nil
			}

			trader, err := ensureUser(a, cmd, usecase.RegisterInput{
				Phone: traderPhone, Name: "متجر المناقل", Password: adminPassword, Role: entity.RoleTrader, Location: "الخرطوم",
			})
			if err != nil {
				return err
			}

			identity := entity.Identity{UserID: trader.ID, Name: trader.Name, Role: trader.Role}
			for _, input := range sampleListings {
				product, err := a.catalog.CreateProduct(ctx, identity, input)
				if err != nil {
					return fmt.Errorf("seed listing %q: %w", input.Title, err)
				}
				fmt.Fprintf(a.out, "listing %s created\n", product.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&adminPhone, "admin-phone", "0900000000", "phone of the admin account")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password for the seeded accounts")
	cmd.Flags().StringVar(&traderPhone, "trader-phone", "0911111111", "phone of the demo trader")
	cmd.Flags().BoolVar(&withListings, "listings", true, "also create the demo trader and its listings")
	return cmd
}

// ensureUser registers input unless the phone already has a profile, in
// which case only the role is brought in line.
func ensureUser(a *app, cmd *cobra.Command, input usecase.RegisterInput) (*entity.User, error) {
	ctx := cmd.Context()

	existing, err := a.directory.FindByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return a.directory.Register(ctx, input)
	}
	if existing.Role != input.Role {
		if err := a.directory.SetRole(ctx, existing.ID, input.Role); err != nil {
			return nil, err
		}
		existing.Role = input.Role
	}
	return existing, nil
}
