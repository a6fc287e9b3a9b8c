package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"taskpad/internal/auth"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/sync"
)

const (
	// OAuth scope for Google Tasks (googletasks backend)
	tasksScope = "https://www.googleapis.com/auth/tasks"

	// OAuth callback timeout
	oauthCallbackTimeout = 5 * time.Minute

	// Token exchange timeout
	tokenExchangeTimeout = 30 * time.Second

	// Starting port for OAuth callback server
	oauthStartPort = 8085

	// Max port attempts
	oauthMaxPortAttempts = 5
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. It establishes the identity that
// scopes every task query. For the googletasks backend it also runs the
// OAuth flow and stores the token.
type LoginCmd struct {
	user string
}

// SetUser sets the user name (for testing).
func (c *LoginCmd) SetUser(user string) {
	c.user = user
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in" }
func (c *LoginCmd) Usage() string     { return "taskpad login [--user <name>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.user, "user", "", "")
	fs.StringVar(&c.user, "u", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	if cfg.Backend == config.BackendGoogleTasks {
		return c.runGoogleLogin(ctx, cfg, out, errOut)
	}

	if c.user == "" {
		fmt.Fprintln(errOut, "error: user name required (use --user)")
		return exitcode.UserError
	}

	if err := auth.Save(cfg, auth.Identity{User: c.user}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save identity: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "signed in as %s\n", c.user)
	}
	return exitcode.Success
}

// runGoogleLogin performs the OAuth authorization-code flow with PKCE
// against a local callback server and stores the resulting token.
func (c *LoginCmd) runGoogleLogin(ctx context.Context, cfg *config.Config, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n\n", cfg.Dir)
		fmt.Fprintln(errOut, "To use the googletasks backend, you need OAuth credentials:")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "1. Go to https://console.cloud.google.com/apis/credentials")
		fmt.Fprintln(errOut, "2. Create a project (or select an existing one)")
		fmt.Fprintln(errOut, "3. Enable the Google Tasks API:")
		fmt.Fprintln(errOut, "   https://console.cloud.google.com/apis/library/tasks.googleapis.com")
		fmt.Fprintln(errOut, "4. Create OAuth 2.0 credentials:")
		fmt.Fprintln(errOut, "   - Click 'Create Credentials' > 'OAuth client ID'")
		fmt.Fprintln(errOut, "   - Choose 'Desktop app' as application type")
		fmt.Fprintln(errOut, "   - Download the JSON file")
		fmt.Fprintln(errOut, "5. Save it as:")
		fmt.Fprintf(errOut, "   %s/oauth_client.json\n", cfg.Dir)
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "Then run 'taskpad login' again.")
		return exitcode.AuthError
	}

	user := c.user
	if user == "" {
		user = "me"
	}

	// Already signed in with a usable token
	if cfg.HasToken() && isTokenValid(cfg) {
		if err := auth.Save(cfg, auth.Identity{User: user}); err != nil {
			fmt.Fprintf(errOut, "error: failed to save identity: %v\n", err)
			return exitcode.AuthError
		}
		if !cfg.Quiet {
			fmt.Fprintln(out, "already signed in")
		}
		return exitcode.Success
	}

	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read oauth_client.json: %v\n", err)
		return exitcode.AuthError
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, tasksScope)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid oauth_client.json: %v\n", err)
		return exitcode.AuthError
	}

	// Find available port
	port, listener, err := findAvailablePort()
	if err != nil {
		fmt.Fprintln(errOut, "error: could not bind to local port for OAuth callback")
		return exitcode.AuthError
	}
	defer listener.Close()

	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, authURL)

	// Start callback server
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			errCh <- fmt.Errorf("no code in callback")
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for callback or timeout
	var code string
	select {
	case code = <-codeCh:
		// Got code
	case err := <-errCh:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case <-time.After(oauthCallbackTimeout):
		fmt.Fprintln(errOut, "error: oauth callback timed out")
		return exitcode.AuthError
	case <-ctx.Done():
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.AuthError
	}

	// Shutdown server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	// Exchange code for token
	exchangeCtx, cancelExchange := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancelExchange()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to exchange code for token: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	if err := saveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if err := auth.Save(cfg, auth.Identity{User: user}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save identity: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "signed in as %s\n", user)
	}
	return exitcode.Success
}

// findAvailablePort tries to find an available port starting from oauthStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < oauthMaxPortAttempts; i++ {
		port := oauthStartPort + i
		addr := fmt.Sprintf("localhost:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, fmt.Errorf("no available port found")
}

// isTokenValid checks if the token file contains a usable token: parseable,
// has a refresh token, and can still mint an access token.
func isTokenValid(cfg *config.Config) bool {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return false
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return false
	}
	if token.RefreshToken == "" {
		return false
	}

	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return false
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, tasksScope)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Refreshes if needed
	_, err = oauthConfig.TokenSource(ctx, &token).Token()
	return err == nil
}

// saveToken saves an OAuth token to a file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
