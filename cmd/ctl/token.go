package main

import (
	"encoding/json"
	"fmt"
	"hotelier/shared/constant"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	flagUserID = "user-id"
	flagEmail  = "email"
	flagRole   = "role"
)

var roles = []string{constant.RoleSuperAdmin, constant.RoleAdmin, constant.RoleStaff}

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Bearer token utilities",
	}

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue an access and refresh token pair for a staff member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, _ := cmd.Flags().GetString(flagUserID)
			email, _ := cmd.Flags().GetString(flagEmail)
			role, _ := cmd.Flags().GetString(flagRole)

			if email == "" {
				return fmt.Errorf("--%s is required", flagEmail)
			}

			if !slices.Contains(roles, role) {
				return fmt.Errorf("--%s must be one of %v", flagRole, roles)
			}

			if userID == "" {
				userID = uuid.NewString()
			}

			pair, err := services().JWT.GenerateTokenPair(userID, email, role)
			if err != nil {
				return fmt.Errorf("generate token pair: %w", err)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")

			return encoder.Encode(pair)
		},
	}

	issue.Flags().String(flagUserID, "", "Subject user id (random when empty)")
	issue.Flags().String(flagEmail, "", "Email claim")
	issue.Flags().String(flagRole, constant.RoleStaff, "Role claim: superadmin, admin or staff")

	cmd.AddCommand(issue)

	return cmd
}
