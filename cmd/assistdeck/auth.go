package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/session"
)

var (
	loginEmail    string
	loginPassword string

	registerName         string
	registerEmail        string
	registerPassword     string
	registerSubscription string
	registerRole         string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store a session",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account, sign in, and store a session",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerSubscription, "subscription", "free", "Subscription plan")
	registerCmd.Flags().StringVar(&registerRole, "role", "", "Account role set after registration")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// promptLine reads a line from stdin with a prompt.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, falling back to a plain read otherwise.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return promptLine("")
}

func resolveCredentials(email, password string) (string, string, error) {
	var err error
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = promptPassword("Password: "); err != nil {
			return "", "", err
		}
	}
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	return email, password, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	email, password, err := resolveCredentials(loginEmail, loginPassword)
	if err != nil {
		return err
	}

	result, err := a.client.Login(ctx, api.LoginParams{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	if err := a.session.Save(session.Credential{Token: result.Token, User: result.User}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", result.User.Name, result.User.Email)
	return nil
}

// runRegister mirrors the sign-up flow of the web client: register,
// then log in for a token, then apply the requested role.
func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	name := registerName
	if name == "" {
		if name, err = promptLine("Name: "); err != nil {
			return err
		}
	}
	email, password, err := resolveCredentials(registerEmail, registerPassword)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}

	if err := a.client.Register(ctx, api.RegisterParams{
		Name:         name,
		Email:        email,
		Password:     password,
		Subscription: registerSubscription,
	}); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	result, err := a.client.Login(ctx, api.LoginParams{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("registered, but sign-in failed: %s", api.UserMessage(err))
	}
	if err := a.session.Save(session.Credential{Token: result.Token, User: result.User}); err != nil {
		return err
	}

	if registerRole != "" {
		if err := a.client.UpdateRole(ctx, registerRole); err != nil {
			// The account works without the role; report and move on.
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not set role: %s\n", api.UserMessage(err))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Account created. Signed in as %s (%s)\n", result.User.Name, result.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if !a.session.Authenticated() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
		return nil
	}
	if err := a.session.Clear(); err != nil {
		return err
	}
	if a.cache != nil {
		ctx, cancel := signalContext()
		defer cancel()
		if err := a.cache.Purge(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	user, err := a.session.Current()
	if err != nil {
		return fmt.Errorf("not signed in; run: assistdeck login")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
	if user.Role != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Role: %s\n", user.Role)
	}
	if user.SubscriptionStatus != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Subscription: %s\n", user.SubscriptionStatus)
	}
	return nil
}
