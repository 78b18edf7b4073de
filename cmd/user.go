/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/apiserver/config"
	"github.com/taskdeck/apiserver/internal/db"
	"github.com/taskdeck/apiserver/internal/events"
	"github.com/taskdeck/apiserver/internal/logger"
	"github.com/taskdeck/apiserver/internal/services"
	"github.com/taskdeck/apiserver/internal/store"
)

// userCmd represents the user command.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts directly against the store",
}

var (
	userCreateName     string
	userCreatePassword string
	userCreateAdmin    bool
)

// userCreateCmd inserts a user without going through the HTTP API. Self
// registration requires a token, so the first (admin) account has to be
// bootstrapped from here.
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(userCreateName)
		if name == "" || userCreatePassword == "" {
			return errors.New("--name and --password are required")
		}

		cfg := config.LoadConfig()
		log := logger.New(cfg.LogLevel)

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open database failed: %w", err)
		}
		defer func() {
			_ = dbConn.Close()
		}()

		userRepo := store.NewUserRepository(dbConn)
		taskRepo := store.NewTaskRepository(dbConn)
		publisher := events.NewPublisher(events.NoopBackend{}, cfg.Events.Channel, log)
		userService := services.NewUserService(userRepo, taskRepo, publisher)

		user, err := userService.Register(cmd.Context(), name, userCreatePassword, userCreateAdmin)
		if err != nil {
			return fmt.Errorf("create user failed: %w", err)
		}

		fmt.Printf("created user %q public_id=%s admin=%t\n", user.Name, user.PublicID, user.IsAdmin)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().StringVar(&userCreateName, "name", "", "login name")
	userCreateCmd.Flags().StringVar(&userCreatePassword, "password", "", "plaintext password, hashed before storage")
	userCreateCmd.Flags().BoolVar(&userCreateAdmin, "admin", false, "grant admin privileges")
}
