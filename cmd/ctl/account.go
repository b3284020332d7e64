package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-gin-gorm-library/internal/bootstrap"
	"go-gin-gorm-library/internal/service"
)

func seedAdminCmd(e *env) *cobra.Command {
	var name, email, phone, password string

	c := &cobra.Command{
		Use:   "seed-admin",
		Short: "Ensure an administrator member and login account exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := e.cfg.Auth
			if name == "" {
				name = a.AdminName
			}
			if email == "" {
				email = a.AdminEmail
			}
			if phone == "" {
				phone = a.AdminPhone
			}
			if password == "" {
				password = a.AdminPassword
			}
			if email == "" {
				return fmt.Errorf("email required: pass --email or set auth.adminEmail")
			}
			if password == "" {
				p, err := readPassword(cmd, "Admin password: ")
				if err != nil {
					return err
				}
				password = p
			}

			return e.withApp(cmd.Context(), func(app *bootstrap.App) error {
				res, err := app.Auth.Seed(cmd.Context(), service.SeedAccountCmd{
					Name: name, Email: email, Phone: phone, Password: password,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seed-admin %s: member created=%t, account created=%t, role=%s\n",
					email, res.MemberCreated, res.AccountCreated, app.Auth.RoleOf(email))
				return nil
			})
		},
	}

	c.Flags().StringVar(&name, "name", "", "display name (default auth.adminName)")
	c.Flags().StringVar(&email, "email", "", "login email (default auth.adminEmail)")
	c.Flags().StringVar(&phone, "phone", "", "phone (default auth.adminPhone)")
	c.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return c
}

func createAccountCmd(e *env) *cobra.Command {
	var email, password string

	c := &cobra.Command{
		Use:   "create-account",
		Short: "Create a login account for an existing member",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				p, err := readPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			return e.withApp(cmd.Context(), func(app *bootstrap.App) error {
				acc, err := app.Auth.Register(cmd.Context(), service.RegisterAccountCmd{Email: email, Password: password})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "account %d created for %s\n", acc.ID(), acc.Email())
				return nil
			})
		},
	}

	c.Flags().StringVar(&email, "email", "", "member email (required)")
	c.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = c.MarkFlagRequired("email")
	return c
}
