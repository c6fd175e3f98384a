package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	authModels "github.com/m04kA/SMC-CarWashService/internal/service/auth/models"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/password"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

const adminCommandTimeout = 30 * time.Second

var (
	adminUsername string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a local account with the admin role",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(func(ctx context.Context, users *userRepo.Repository, hasherCost int) error {
			req := authModels.RegisterRequest{
				Username: strings.TrimSpace(adminUsername),
				Password: adminPassword,
			}
			if err := validation.New().Struct(req); err != nil {
				return err
			}

			hash, err := password.NewHasher(hasherCost).Hash(req.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			user, err := users.Create(ctx, &domain.User{
				Username:     req.Username,
				Role:         domain.RoleAdmin,
				Provider:     domain.ProviderLocal,
				PasswordHash: &hash,
			})
			if err != nil {
				if errors.Is(err, userRepo.ErrUsernameTaken) {
					return fmt.Errorf("username %q is already taken", req.Username)
				}
				return err
			}

			fmt.Printf("Admin %s created (id=%d)\n", user.Username, user.ID)
			return nil
		})
	},
}

var adminPromoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Grant the admin role to an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(func(ctx context.Context, users *userRepo.Repository, _ int) error {
			user, err := users.GetByUsername(ctx, strings.TrimSpace(adminUsername))
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) {
					return fmt.Errorf("user %q not found", adminUsername)
				}
				return err
			}
			if user.IsAdmin() {
				fmt.Printf("User %s is already an admin\n", user.Username)
				return nil
			}

			if _, err := users.SetRole(ctx, user.ID, domain.RoleAdmin); err != nil {
				return err
			}

			fmt.Printf("User %s promoted to admin\n", user.Username)
			return nil
		})
	},
}

func init() {
	adminCreateCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "admin username")
	adminCreateCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "admin password")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminPromoteCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "username to promote")
	_ = adminPromoteCmd.MarkFlagRequired("username")

	adminCmd.AddCommand(adminCreateCmd, adminPromoteCmd)
	rootCmd.AddCommand(adminCmd)
}

func withUsers(fn func(ctx context.Context, users *userRepo.Repository, hasherCost int) error) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := openDB(cfg.Database)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), adminCommandTimeout)
	defer cancel()

	return fn(ctx, userRepo.NewRepository(dbmetrics.Wrap(db, nil)), cfg.Auth.BcryptCost)
}
