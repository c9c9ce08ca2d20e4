package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var deactivateUserCmd = &cobra.Command{
	Use:   "deactivate <username>",
	Short: "Deactivate an account; its tokens stop working immediately",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initializeDependencies()
		if err != nil {
			log.Fatalf("failed to initialize dependencies: %v", err)
		}
		defer deps.Close()

		ctx := context.Background()
		u, err := deps.Users.GetByUsername(ctx, args[0])
		if err != nil {
			log.Fatalf("failed to look up user: %v", err)
		}
		if u == nil {
			log.Fatalf("user %q not found", args[0])
		}

		if err := deps.Users.Deactivate(ctx, u.ID); err != nil {
			log.Fatalf("failed to deactivate user: %v", err)
		}
		fmt.Println("Deactivated user:", u.Username)
	},
}

func init() {
	usersCmd.AddCommand(deactivateUserCmd)
	rootCmd.AddCommand(usersCmd)
}
