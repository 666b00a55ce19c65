package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aussiebroadwan/recipebox/pkg/authsdk"
)

const usage = `usage: recipectl <command>

commands:
  register   create an account
  login      sign in and remember the token
  logout     forget the stored token
  whoami     show the stored identity (offline)
  current    ask the server who the stored token belongs to
`

type App struct {
	client *authsdk.SDKClient
	tokens *authsdk.TokenStore
	reader *bufio.Reader
	out    io.Writer

	closeFn func() error
}

// NewApp opens the token state file and builds a client for cfg.ServerURL.
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	kv, err := authsdk.OpenSQLiteKV(ctx, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}

	tokens := authsdk.NewTokenStore(kv)
	app := NewAppWith(authsdk.NewSDKClient(cfg.ServerURL, tokens), os.Stdin, os.Stdout)
	app.closeFn = kv.Close
	return app, nil
}

// NewAppWith builds an App around an existing client. The client must
// carry a TokenStore.
func NewAppWith(client *authsdk.SDKClient, in io.Reader, out io.Writer) *App {
	return &App{
		client: client,
		tokens: client.Tokens,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// Run dispatches one command and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "register":
		err = a.Register(ctx)
	case "login":
		err = a.Login(ctx)
	case "logout":
		err = a.Logout(ctx)
	case "whoami":
		err = a.WhoAmI(ctx)
	case "current":
		err = a.Current(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return 0
	default:
		fmt.Fprintf(a.out, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

func (a *App) printError(err error) {
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		keys := make([]string, 0, len(apiErr.Fields))
		for k := range apiErr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(a.out, "%s: %s\n", k, apiErr.Fields[k])
		}
		return
	}
	fmt.Fprintf(a.out, "error: %v\n", err)
}
