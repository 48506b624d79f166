package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/session"
)

var (
	flagEmail     string
	flagPassword  string
	flagFirstName string
	flagLastName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your finboard account",
	RunE:  run(runLogin),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a finboard account",
	RunE:  run(runRegister),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE:  run(runLogout),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  run(runWhoami),
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&flagEmail, "email", "", "Account email")
		c.Flags().StringVar(&flagPassword, "password", "", "Account password (prompted when omitted)")
	}
	registerCmd.Flags().StringVar(&flagFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&flagLastName, "last-name", "", "Last name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// promptMissing asks for any inputs left empty on the command line.
func promptMissing(inputs ...*huh.Input) error {
	if len(inputs) == 0 {
		return nil
	}
	fields := make([]huh.Field, len(inputs))
	for i, in := range inputs {
		fields[i] = in
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func credentialInputs() []*huh.Input {
	var inputs []*huh.Input
	if flagEmail == "" {
		inputs = append(inputs, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Validate(required("email")).
			Value(&flagEmail))
	}
	if flagPassword == "" {
		inputs = append(inputs, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(required("password")).
			Value(&flagPassword))
	}
	return inputs
}

func runLogin(ctx context.Context, a *app, _ []string) error {
	if err := promptMissing(credentialInputs()...); err != nil {
		return err
	}

	res := a.client.Login(ctx, api.Credentials{
		Email:    strings.TrimSpace(flagEmail),
		Password: flagPassword,
	})
	if !res.Success {
		return errors.New(res.Message)
	}
	fmt.Fprintf(a.out, "  Signed in as %s\n", displayName(*res.User))
	return nil
}

func runRegister(ctx context.Context, a *app, _ []string) error {
	var inputs []*huh.Input
	if flagFirstName == "" {
		inputs = append(inputs, huh.NewInput().Title("First name").Validate(required("first name")).Value(&flagFirstName))
	}
	if flagLastName == "" {
		inputs = append(inputs, huh.NewInput().Title("Last name").Value(&flagLastName))
	}
	inputs = append(inputs, credentialInputs()...)
	if err := promptMissing(inputs...); err != nil {
		return err
	}

	res := a.client.Register(ctx, api.RegisterRequest{
		FirstName: strings.TrimSpace(flagFirstName),
		LastName:  strings.TrimSpace(flagLastName),
		Email:     strings.TrimSpace(flagEmail),
		Password:  flagPassword,
	})
	if !res.Success {
		return errors.New(res.Message)
	}
	fmt.Fprintln(a.out, "  Account created. Run `finboard login` to sign in.")
	return nil
}

func runLogout(_ context.Context, a *app, _ []string) error {
	return a.client.Logout()
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	s, ok := a.client.CurrentSession()
	if !ok {
		fmt.Fprintln(a.out, "  Not signed in. Run `finboard login`.")
		return nil
	}
	fmt.Fprintf(a.out, "  %s <%s>\n", displayName(s.User), s.User.Email)
	if exp, ok := session.TokenExpiry(s.Token); ok {
		fmt.Fprintf(a.out, "  Session valid until %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(a.out, "  Gateway: %s\n", a.client.BaseURL())
	return nil
}

func displayName(u session.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
