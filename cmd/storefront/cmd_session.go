package main

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/spf13/cobra"
)

var (
	asAdmin bool

	loginEmail    string
	loginPassword string

	regName     string
	regEmail    string
	regPassword string
	regPhone    string

	profName    string
	profPhone   string
	profAddress string
)

// newSessionManager wires the requested variant. Each CLI invocation
// is a fresh process, so the backend cookie only lives for the one
// command; the mirror still shows the last confirmed identity.
func newSessionManager() (*session.Manager, error) {
	variant := session.CustomerConfig(cfg.API.BaseURL)
	if asAdmin {
		variant = session.AdminConfig(cfg.API.BaseURL)
	}
	variant.OnLogout = func() { fmt.Println("-> redirect to /") }

	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	mgr, err := session.NewManager(variant, fileStore,
		session.WithLogger(logger),
		session.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("session.NewManager: %w", err)
	}
	return mgr, nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as customer (or admin with --admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager()
		if err != nil {
			return err
		}

		res := mgr.Login(cmd.Context(), domain.Credentials{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if !res.OK {
			return fmt.Errorf("login failed: %s", res.Message)
		}

		fmt.Printf("logged in as %s <%s>\n", res.Identity.Name, res.Identity.Email)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Probe the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager()
		if err != nil {
			return err
		}

		if mirror, ok := mgr.Mirror(); ok {
			fmt.Printf("mirror: %s <%s>\n", mirror.Name, mirror.Email)
		}

		ident, ok := mgr.CheckAuth(cmd.Context())
		if !ok {
			fmt.Println("not authenticated")
			return nil
		}
		fmt.Printf("authenticated: %s <%s> role=%s\n", ident.Name, ident.Email, ident.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local mirror",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager()
		if err != nil {
			return err
		}

		mgr.Logout(cmd.Context())
		fmt.Println("logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a customer account",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager()
		if err != nil {
			return err
		}

		res, err := mgr.Register(cmd.Context(), domain.Registration{
			Name:     regName,
			Email:    regEmail,
			Password: regPassword,
			Phone:    regPhone,
		})
		if err != nil {
			return err
		}
		if !res.OK {
			return fmt.Errorf("registration failed: %s", res.Message)
		}

		fmt.Printf("registered %s <%s>\n", res.Identity.Name, res.Identity.Email)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the customer profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager()
		if err != nil {
			return err
		}

		// re-establish the session cookie for this process first
		ctx := cmd.Context()
		if _, ok := mgr.CheckAuth(ctx); !ok {
			res := mgr.Login(ctx, domain.Credentials{Email: loginEmail, Password: loginPassword})
			if !res.OK {
				return fmt.Errorf("login failed: %s", res.Message)
			}
		}

		res, err := mgr.UpdateProfile(ctx, domain.ProfileUpdate{
			Name:    profName,
			Phone:   profPhone,
			Address: profAddress,
		})
		if err != nil {
			return err
		}
		if !res.OK {
			return fmt.Errorf("profile update failed: %s", res.Message)
		}

		fmt.Printf("profile updated: %s\n", res.Identity.Name)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, whoamiCmd, logoutCmd, profileCmd} {
		c.Flags().BoolVar(&asAdmin, "admin", false, "use the admin session variant")
	}

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&regName, "name", "", "full name")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&regPhone, "phone", "", "contact phone")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	profileCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	profileCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	profileCmd.Flags().StringVar(&profName, "name", "", "new display name")
	profileCmd.Flags().StringVar(&profPhone, "phone", "", "new contact phone")
	profileCmd.Flags().StringVar(&profAddress, "address", "", "new delivery address")
}
