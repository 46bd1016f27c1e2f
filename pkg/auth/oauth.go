package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

const (
	// ClientSecretsFile is the credentials.json downloaded from the Google
	// Cloud console, read from the config directory.
	ClientSecretsFile = "credentials.json"

	// TokenFile caches the access and refresh token next to it.
	TokenFile = "token.json"

	// LocalhostAuthPort receives the OAuth redirect.
	LocalhostAuthPort = "6789"
)

// Scopes needed to read a private spreadsheet.
var Scopes = []string{sheets.SpreadsheetsReadonlyScope}

// Flow runs the installed-app OAuth flow and caches the token in Dir.
type Flow struct {
	Dir    string
	Scopes []string
	// Timeout bounds how long to wait for the browser redirect.
	Timeout time.Duration
	Logger  *log.Logger
}

// NewFlow returns a Flow keeping its files in dir.
func NewFlow(dir string) *Flow {
	return &Flow{Dir: dir, Scopes: Scopes, Timeout: 5 * time.Minute, Logger: log.Default()}
}

// TokenPath is where the cached token lives.
func (f *Flow) TokenPath() string { return filepath.Join(f.Dir, TokenFile) }

// Config reads the client secrets and fixes the redirect to our listener.
func (f *Flow) Config() (*oauth2.Config, error) {
	path := filepath.Join(f.Dir, ClientSecretsFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", path, err)
	}
	cfg, err := google.ConfigFromJSON(b, f.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	cfg.RedirectURL = RedirectURL(cfg.RedirectURL)
	return cfg, nil
}

// RedirectURL forces localhost and out-of-band redirects onto
// LocalhostAuthPort. Other URLs are returned unchanged.
func RedirectURL(raw string) string {
	if raw == "" || raw == "urn:ietf:wg:oauth:2.0:oob" {
		return fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Hostname() != "localhost" && u.Hostname() != "127.0.0.1" {
		return raw
	}
	u.Host = net.JoinHostPort(u.Hostname(), LocalhostAuthPort)
	return u.String()
}

// Client returns an HTTP client that refreshes its token automatically.
// When no token is cached it runs the browser flow first.
func (f *Flow) Client(ctx context.Context) (*http.Client, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}

	tok, err := LoadToken(f.TokenPath())
	if err != nil {
		f.Logger.Printf("No existing token found at %s. Initiating web authorization flow...", f.TokenPath())
		tok, err = f.tokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to get token from web: %w", err)
		}
		if err := SaveToken(f.TokenPath(), tok); err != nil {
			f.Logger.Printf("Warning: could not cache token: %v", err)
		}
	}

	// Persist a refreshed token so the next run doesn't refresh again.
	src := oauth2.ReuseTokenSource(tok, cfg.TokenSource(ctx, tok))
	if current, err := src.Token(); err == nil && current.AccessToken != tok.AccessToken {
		if err := SaveToken(f.TokenPath(), current); err != nil {
			f.Logger.Printf("Warning: could not save refreshed token: %v", err)
		}
	}
	return oauth2.NewClient(ctx, src), nil
}

// Reset removes the cached token so the next Client call re-authorizes.
func (f *Flow) Reset() error {
	err := os.Remove(f.TokenPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete token file '%s': %w", f.TokenPath(), err)
	}
	return nil
}

func (f *Flow) tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	listener, err := net.Listen("tcp", ":"+LocalhostAuthPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}

	server := &http.Server{
		Handler:      callbackHandler(codeCh, errCh),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	defer server.Close()

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Please open the following URL in your browser to authorize read access to the spreadsheet:\n%s\n", authURL)

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	select {
	case code := <-codeCh:
		exCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := cfg.Exchange(exCtx, code)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(timeout):
		return nil, fmt.Errorf("authorization timed out. Please try again")
	}
}

func callbackHandler(codeCh chan<- string, errCh chan<- error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Authorization code not found", http.StatusBadRequest)
			select {
			case errCh <- fmt.Errorf("authorization code not found in redirect URL"):
			default:
			}
			return
		}
		fmt.Fprint(w, "Authentication successful! You can close this window.")
		select {
		case codeCh <- code:
		default:
		}
	})
}

// LoadToken reads a cached token.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes tok to path, readable by the owner only.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
