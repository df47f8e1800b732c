package commands

import (
	"context"
	"fmt"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/spf13/cobra"
)

// NewAuthCmd creates the command that registers or updates a hosted auth
// provider used for token verification.
func NewAuthCmd() *cobra.Command {
	var issuer, clientID, jwksURL, authEndpoint string

	cmd := &cobra.Command{
		Use:   "auth <provider-name>",
		Short: "Configure a hosted auth provider",
		Long:  "Configure a hosted auth provider for token verification. Provider name can be any identifier (e.g., 'cognito', 'auth0')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := args[0]
			if provider == "" {
				return fmt.Errorf("provider name cannot be empty")
			}
			if issuer == "" || clientID == "" {
				return fmt.Errorf("required flags: --issuer, --client-id")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			authConfig := &models.AuthConfig{
				Provider: provider,
				Issuer:   issuer,
				ClientID: clientID,
			}
			if jwksURL == "" {
				// Cognito and most hosted providers publish keys here
				jwksURL = issuer + "/.well-known/jwks.json"
			}
			authConfig.JWKSUrl = &jwksURL
			if authEndpoint != "" {
				authConfig.AuthEndpoint = &authEndpoint
			}

			if err := database.NewAuthConfigRepository(db).Set(context.Background(), authConfig); err != nil {
				return fmt.Errorf("save auth config: %w", err)
			}

			fmt.Printf("Saved auth configuration for provider: %s\n", provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&issuer, "issuer", "", "Token issuer URL (required)")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID (required)")
	cmd.Flags().StringVar(&jwksURL, "jwks-url", "", "JWKS URL (optional, derived from issuer when omitted)")
	cmd.Flags().StringVar(&authEndpoint, "auth-endpoint", "", "Authorization endpoint override (optional, e.g. a Cognito hosted UI domain)")

	return cmd
}
