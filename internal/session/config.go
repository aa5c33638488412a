package session

import "fmt"

// Config parameterizes a Manager for one session variant. The admin
// and customer contexts are the same state machine with different
// endpoints, mirror key, and protected route prefix.
type Config struct {
	// Name tags log entries, e.g. "admin" or "customer".
	Name string

	BaseURL    string
	WhoamiPath string
	LoginPath  string
	LogoutPath string

	// RegisterPath and ProfilePath are empty on variants that cannot
	// register or edit a profile; calling those operations anyway is a
	// wiring defect and fails hard.
	RegisterPath string
	ProfilePath  string

	// MirrorKey is the local-store key holding the warm-start copy of
	// the identity.
	MirrorKey string

	// ProtectedPrefix gates the initial session probe: routes outside
	// it never touch the network.
	ProtectedPrefix string

	// OnLogout runs after logout has cleared local state, typically a
	// redirect to the site root.
	OnLogout func()
}

func (c Config) validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is empty")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("baseURL is empty")
	}
	if c.WhoamiPath == "" || c.LoginPath == "" || c.LogoutPath == "" {
		return fmt.Errorf("whoami, login and logout paths are required")
	}
	if c.MirrorKey == "" {
		return fmt.Errorf("mirrorKey is empty")
	}
	if c.ProtectedPrefix == "" {
		return fmt.Errorf("protectedPrefix is empty")
	}
	return nil
}

// AdminConfig is the CMS-side session wiring. Admins cannot
// self-register or edit their profile from the storefront.
func AdminConfig(baseURL string) Config {
	return Config{
		Name:            "admin",
		BaseURL:         baseURL,
		WhoamiPath:      "/api/admin/whoami",
		LoginPath:       "/api/admin/login",
		LogoutPath:      "/api/admin/logout",
		MirrorKey:       "admin_session",
		ProtectedPrefix: "/admin",
	}
}

// CustomerConfig is the storefront-account session wiring. Profile
// updates go as PUT against the whoami endpoint.
func CustomerConfig(baseURL string) Config {
	return Config{
		Name:            "customer",
		BaseURL:         baseURL,
		WhoamiPath:      "/api/auth/whoami",
		LoginPath:       "/api/auth/login",
		LogoutPath:      "/api/auth/logout",
		RegisterPath:    "/api/auth/register",
		ProfilePath:     "/api/auth/whoami",
		MirrorKey:       "customer_session",
		ProtectedPrefix: "/account",
	}
}
