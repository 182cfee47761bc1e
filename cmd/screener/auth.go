package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-screener/internal/forms"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var req types.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			if req.Password == "" {
				pw, err := readSecret(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: ")
				if err != nil {
					return err
				}
				req.Password = pw
			}
			out, err := forms.NewLoginFlow(a.deps()).Submit(cmd.Context(), req)
			return a.report(cmd, out, err)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password (read from stdin when omitted)")
	return cmd
}

func newSignupCmd(a *app) *cobra.Command {
	var req types.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			if req.Password == "" {
				pw, err := readSecret(cmd, in, "Password: ")
				if err != nil {
					return err
				}
				req.Password = pw
			}
			if !cmd.Flags().Changed("confirm") {
				pw, err := readSecret(cmd, in, "Confirm password: ")
				if err != nil {
					return err
				}
				req.Confirm = pw
			}
			out, err := forms.NewSignupFlow(a.deps()).Submit(cmd.Context(), req)
			return a.report(cmd, out, err)
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (read from stdin when omitted)")
	cmd.Flags().StringVar(&req.Confirm, "confirm", "", "Password confirmation (read from stdin when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			out, err := forms.Logout(a.session)
			return a.report(cmd, out, err)
		},
	}
}

// readSecret prompts on the command's output and reads one line from in.
// Terminal echo is not suppressed.
func readSecret(cmd *cobra.Command, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
