// Package cli implements the credctl commands on top of the gRPC client.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/netx"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
)

type credentialClient interface {
	Ping(ctx context.Context) error
	RegisterPublicKey(ctx context.Context, key, label string) (*models.PublicKey, error)
	ListPublicKeys(ctx context.Context) ([]*models.PublicKey, error)
	RevokePublicKey(ctx context.Context, key string) error
	CreateToken(ctx context.Context, bucket, operation string) (*models.AccessToken, error)
	LookupToken(ctx context.Context, token string) (*models.AccessToken, error)
	RevokeToken(ctx context.Context, token string) error
	RedeemToken(ctx context.Context, token, objectKey string) (*models.ObjectGrant, error)
	ListStatistics(ctx context.Context, bucket string) ([]*models.StorageStatistic, error)
	SetAccessToken(token string)
	HasAccessToken() bool
}

var ErrUsage = errors.New("usage")

type command struct {
	args  string
	nargs int
	auth  bool
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"ping":         {"", 0, false, (*App).ping},
	"register-key": {"<hex-key> [label]", 1, true, (*App).registerKey},
	"list-keys":    {"", 0, true, (*App).listKeys},
	"revoke-key":   {"<hex-key>", 1, true, (*App).revokeKey},
	"create-token": {"<bucket-id> <PUSH|PULL>", 2, true, (*App).createToken},
	"lookup-token": {"<token>", 1, false, (*App).lookupToken},
	"revoke-token": {"<token>", 1, true, (*App).revokeToken},
	"redeem":       {"<token> <object-key>", 2, false, (*App).redeem},
	"push":         {"<token> <object-key> <file>", 3, false, (*App).push},
	"pull":         {"<token> <object-key> <file>", 3, false, (*App).pull},
	"stats":        {"<bucket-id>", 1, true, (*App).stats},
}

type App struct {
	client  credentialClient
	http    netx.HTTPClient
	out     io.Writer
	prompt  io.Writer
	in      io.Reader
	timeout time.Duration
}

func NewApp(c credentialClient, h netx.HTTPClient, in io.Reader, out, prompt io.Writer, timeout time.Duration) *App {
	return &App{client: c, http: h, in: in, out: out, prompt: prompt, timeout: timeout}
}

// Run executes one command given as args[0] with its arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	cmd, ok := commands[args[0]]
	if !ok || len(args)-1 < cmd.nargs {
		a.usage()
		return ErrUsage
	}

	if cmd.auth && !a.client.HasAccessToken() {
		token, err := readSecret(a.prompt, a.in, "Access token: ")
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		a.client.SetAccessToken(token)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	return cmd.run(a, ctx, args[1:])
}

func (a *App) usage() {
	fmt.Fprintln(a.prompt, "usage: credctl [-a addr] [-t jwt] [-c config.json] <command> [args]")
	w := tabwriter.NewWriter(a.prompt, 0, 0, 2, ' ', 0)
	for _, name := range []string{"ping", "register-key", "list-keys", "revoke-key", "create-token", "lookup-token", "revoke-token", "redeem", "push", "pull", "stats"} {
		fmt.Fprintf(w, "  %s\t%s\n", name, commands[name].args)
	}
	w.Flush()
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) ping(ctx context.Context, _ []string) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out, "OK")
	return err
}

func (a *App) registerKey(ctx context.Context, args []string) error {
	label := ""
	if len(args) > 1 {
		label = strings.Join(args[1:], " ")
	}
	rec, err := a.client.RegisterPublicKey(ctx, args[0], label)
	if err != nil {
		return err
	}
	return a.print(rec)
}

func (a *App) listKeys(ctx context.Context, _ []string) error {
	list, err := a.client.ListPublicKeys(ctx)
	if err != nil {
		return err
	}
	return a.print(list)
}

func (a *App) revokeKey(ctx context.Context, args []string) error {
	return a.client.RevokePublicKey(ctx, args[0])
}

func (a *App) createToken(ctx context.Context, args []string) error {
	tok, err := a.client.CreateToken(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return a.print(tok)
}

func (a *App) lookupToken(ctx context.Context, args []string) error {
	tok, err := a.client.LookupToken(ctx, args[0])
	if err != nil {
		return err
	}
	return a.print(tok)
}

func (a *App) revokeToken(ctx context.Context, args []string) error {
	return a.client.RevokeToken(ctx, args[0])
}

func (a *App) redeem(ctx context.Context, args []string) error {
	grant, err := a.client.RedeemToken(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return a.print(grant)
}

func (a *App) stats(ctx context.Context, args []string) error {
	rows, err := a.client.ListStatistics(ctx, args[0])
	if err != nil {
		return err
	}
	return a.print(rows)
}

// push redeems a PUSH token and uploads a local file to the granted URL.
func (a *App) push(ctx context.Context, args []string) error {
	f, err := os.Open(args[2])
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	grant, err := a.client.RedeemToken(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	if err := netx.Upload(ctx, a.http, grant, f, fi.Size()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "uploaded %d bytes\n", fi.Size())
	return err
}

// pull redeems a PULL token and downloads the object into a local file.
func (a *App) pull(ctx context.Context, args []string) error {
	grant, err := a.client.RedeemToken(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	f, err := os.Create(args[2])
	if err != nil {
		return err
	}

	n, err := netx.Download(ctx, a.http, grant, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(args[2])
		return err
	}

	_, err = fmt.Fprintf(a.out, "downloaded %d bytes\n", n)
	return err
}
