package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"
)

func (r *Root) authCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "Save the portal credential",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "credential",
					Usage:   "credential value (prompted for when omitted)",
					Sources: cli.EnvVars("PORTAL_CREDENTIAL"),
				},
			},
			Action: r.login,
		},
		{
			Name:   "logout",
			Usage:  "Forget the saved credential",
			Action: r.logout,
		},
		{
			Name:   "status",
			Usage:  "Show the client configuration and login state",
			Action: r.status,
		},
	}
}

func (r *Root) login(_ context.Context, c *cli.Command) error {
	cred := c.String("credential")
	if strings.TrimSpace(cred) == "" {
		var err error
		cred, err = r.readSecret("Credential: ")
		if err != nil {
			return err
		}
	}
	cred = strings.TrimSpace(cred)
	if cred == "" {
		return errors.New("credential must not be empty")
	}

	r.rt.Session.Set(cred)
	r.rt.Toasts.Success(msgLoggedIn)
	return r.writeJSON(c, map[string]any{"authenticated": true})
}

func (r *Root) logout(_ context.Context, c *cli.Command) error {
	r.rt.Session.Clear()
	r.rt.Toasts.Info(msgLoggedOut)
	return r.writeJSON(c, map[string]any{"authenticated": false})
}

type statusOutput struct {
	Authenticated bool   `json:"authenticated"`
	BaseURL       string `json:"base_url"`
	Storage       string `json:"storage"`
	Reporters     int    `json:"reporters"`
}

func (r *Root) status(_ context.Context, c *cli.Command) error {
	return r.writeJSON(c, statusOutput{
		Authenticated: r.rt.Session.Authenticated(),
		BaseURL:       r.rt.Config.BaseURL(),
		Storage:       r.rt.Config.StorageType,
		Reporters:     r.rt.Reporters.Size(),
	})
}
