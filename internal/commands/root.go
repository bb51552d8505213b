// Package commands is the portal command-line tree.
package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/easy-qfnu/portal-client/internal/app"
)

// Notification texts.
const (
	msgLoggedIn    = "credential saved"
	msgLoggedOut   = "logged out"
	msgRecommended = "recommendation submitted"
)

// SecretReader prompts for a value without echoing it.
type SecretReader func(prompt string) (string, error)

// Option customizes New.
type Option func(*Root)

// WithNow fixes the clock used for "today".
func WithNow(now func() time.Time) Option {
	return func(r *Root) { r.now = now }
}

// WithSecretReader replaces the terminal prompt used by login.
func WithSecretReader(fn SecretReader) Option {
	return func(r *Root) { r.readSecret = fn }
}

// WithOutput redirects command output.
func WithOutput(out io.Writer) Option {
	return func(r *Root) { r.out = out }
}

// Root holds what every subcommand shares.
type Root struct {
	rt         *app.Runtime
	now        func() time.Time
	readSecret SecretReader
	out        io.Writer
}

// New builds the command tree over rt.
func New(rt *app.Runtime, opts ...Option) *cli.Command {
	r := &Root{rt: rt, now: time.Now, readSecret: promptSecret, out: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}

	cmd := &cli.Command{
		Name:  "portal",
		Usage: "Query the Easy QFNU academic portal",
		Description: `Every command prints JSON on stdout. Failures are shown as notifications
on stderr and end the command with a non-zero status.

Run 'portal login' once; the credential is kept for later runs.`,
		Writer:    r.out,
		ErrWriter: os.Stderr,
	}
	cmd.Commands = append(cmd.Commands, r.authCommands()...)
	cmd.Commands = append(cmd.Commands, r.academicCommands()...)
	cmd.Commands = append(cmd.Commands, r.communityCommands()...)
	cmd.Commands = append(cmd.Commands, r.cacheCommand())
	return cmd
}

func (r *Root) writeJSON(c *cli.Command, v any) error {
	out := c.Root().Writer
	if out == nil {
		out = r.out
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// requireArg returns the first positional argument or a usage error.
func requireArg(c *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(c.Args().First())
	if v == "" {
		return "", fmt.Errorf("missing <%s> argument", name)
	}
	return v, nil
}

// promptSecret reads without echo from a terminal and a plain line otherwise.
func promptSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read credential: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return line, nil
}
