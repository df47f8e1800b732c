package commands

import (
	"context"
	"fmt"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/spf13/cobra"
)

// NewListCmd creates the command that prints every configured auth provider.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured auth providers",
		Long:  "List all configured auth providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			configs, err := database.NewAuthConfigRepository(db).List(context.Background())
			if err != nil {
				return fmt.Errorf("list auth configs: %w", err)
			}
			if len(configs) == 0 {
				fmt.Println("No auth providers configured")
				return nil
			}

			fmt.Println("Configured auth providers:")
			for _, c := range configs {
				fmt.Printf("  - Provider: %s\n", c.Provider)
				fmt.Printf("    Issuer: %s\n", c.Issuer)
				fmt.Printf("    Client ID: %s\n", c.ClientID)
				if c.JWKSUrl != nil {
					fmt.Printf("    JWKS URL: %s\n", *c.JWKSUrl)
				}
				if c.AuthEndpoint != nil {
					fmt.Printf("    Auth endpoint: %s\n", *c.AuthEndpoint)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
