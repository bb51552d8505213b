package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"
)

func (r *Root) cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local key-value store",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the JSON stored under a key",
				ArgsUsage: "<key>",
				Action:    r.cacheGet,
			},
			{
				Name:      "set",
				Usage:     "Store a JSON value (plain text is stored as a string)",
				ArgsUsage: "<key> <value>",
				Action:    r.cacheSet,
			},
			{
				Name:      "remove",
				Usage:     "Delete a key",
				ArgsUsage: "<key>",
				Action:    r.cacheRemove,
			},
			{
				Name:   "clear",
				Usage:  "Delete every key",
				Action: r.cacheClear,
			},
		},
	}
}

func (r *Root) cacheGet(_ context.Context, c *cli.Command) error {
	key, err := requireArg(c, "key")
	if err != nil {
		return err
	}
	raw, ok := r.rt.Local.GetRaw(key)
	if !ok {
		return fmt.Errorf("key %q not found", key)
	}
	return r.writeJSON(c, raw)
}

func (r *Root) cacheSet(_ context.Context, c *cli.Command) error {
	key, err := requireArg(c, "key")
	if err != nil {
		return err
	}
	if c.Args().Len() < 2 {
		return fmt.Errorf("missing <value> argument")
	}
	value := c.Args().Get(1)

	var v any = value
	if json.Valid([]byte(value)) {
		v = json.RawMessage(value)
	}
	r.rt.Local.SetJSON(key, v)
	return r.writeJSON(c, map[string]any{"key": key, "stored": true})
}

func (r *Root) cacheRemove(_ context.Context, c *cli.Command) error {
	key, err := requireArg(c, "key")
	if err != nil {
		return err
	}
	r.rt.Local.Remove(key)
	return r.writeJSON(c, map[string]any{"key": key, "removed": true})
}

func (r *Root) cacheClear(_ context.Context, c *cli.Command) error {
	r.rt.Local.Clear()
	return r.writeJSON(c, map[string]any{"cleared": true})
}
