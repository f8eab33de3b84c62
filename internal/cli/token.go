// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/mosaic/internal/platform/config"
	"github.com/taibuivan/mosaic/internal/platform/constants"
	"github.com/taibuivan/mosaic/internal/platform/sec"
)

// DefaultTokenTTL is the lifetime of issued editor tokens.
const DefaultTokenTTL = 12 * time.Hour

func (application *app) tokenCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "token",
		Short: "Manage editor access tokens",
	}

	var (
		userID   string
		username string
		role     string
		ttl      time.Duration
	)

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign an access token for an editor",
		Long: `Sign an RS256 access token with JWT_PRIVATE_KEY_PATH.

Examples:
  # Token allowed to manage placements
  mosaicctl token issue --user 0190f1b6-6a4e-7c5e-9d2a-1f2e3d4c5b6a --role moderator

  # Short-lived admin token
  mosaicctl token issue --user ops --role admin --ttl 15m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sec.UserRole(role).Valid() {
				return fmt.Errorf("unknown role %q (want %s, %s or %s)", role, sec.RoleAdmin, sec.RoleModerator, sec.RoleMember)
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive, got %s", ttl)
			}

			signing, err := config.LoadSection[config.Signing]()
			if err != nil {
				return err
			}

			tokens, err := sec.NewTokenService(signing.JWTPrivKeyPath, signing.JWTPubKeyPath, constants.AuthIssuer)
			if err != nil {
				return err
			}

			token, err := tokens.GenerateAccessToken(userID, username, role, ttl)
			if err != nil {
				return err
			}

			application.logger.Info("token_issued",
				slog.String("user_id", userID),
				slog.String("role", role),
				slog.Duration("ttl", ttl),
			)
			_, err = fmt.Fprintln(application.stdout, token)
			return err
		},
	}
	issue.Flags().StringVarP(&userID, "user", "u", "", "subject user id")
	issue.Flags().StringVar(&username, "name", "", "display name carried in the token")
	issue.Flags().StringVarP(&role, "role", "r", string(sec.RoleMember), "admin, moderator or member")
	issue.Flags().DurationVar(&ttl, "ttl", DefaultTokenTTL, "token lifetime")
	_ = issue.MarkFlagRequired("user")

	command.AddCommand(issue)
	return command
}
