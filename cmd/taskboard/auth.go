package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"taskboard/internal/api"
	"taskboard/internal/service"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			email, err := cmd.Flags().GetString("email")
			if err != nil {
				return err
			}
			if email == "" {
				email, err = promptLine("email: ")
				if err != nil {
					return err
				}
			}
			password, err := promptPassword("password: ")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), api.RequestTimeout)
			defer cancel()
			result, err := e.client.Login(ctx, service.Credentials{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err := e.sess.SaveAuth(result.Token, result.User); err != nil {
				return fmt.Errorf("persist session: %w", err)
			}
			fmt.Printf("signed in as %s (%s)\n", result.User.Name, result.User.Role)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.sess.Clear(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			user, ok := e.sess.User()
			if !ok {
				fmt.Println("not signed in")
				return nil
			}
			fmt.Printf("%s (%s) <%s>\n", user.Name, user.Role, user.Email)
			return nil
		},
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
