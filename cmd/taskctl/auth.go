package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newStore(cmd)
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			confirm, _ := cmd.Flags().GetString("confirm")
			if confirm == "" {
				confirm = password
			}

			if err := s.Register(cmd.Context(), email, username, password, confirm); err != nil {
				return err
			}
			fmt.Println("Registered. Run `taskctl login` to start.")
			return nil
		},
	}
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("username", "", "Username")
	cmd.Flags().String("password", "", "Password")
	cmd.Flags().String("confirm", "", "Password confirmation (defaults to --password)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := newStore(cmd)
			if err != nil {
				return err
			}
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			userID, err := s.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			cfg.UserID = userID
			if err := saveCLIConfig(cfg); err != nil {
				return err
			}
			fmt.Println("Logged in as", username)
			return nil
		},
	}
	cmd.Flags().String("username", "", "Username")
	cmd.Flags().String("password", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig()
			if err != nil {
				return err
			}
			cfg.UserID = ""
			if err := saveCLIConfig(cfg); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
