package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/service/registry"
)

var stdout io.Writer = os.Stdout

type subscribeCommand struct {
	app  *app
	Args struct {
		Chat    int64  `positional-arg-name:"chat" required:"true"`
		Address string `positional-arg-name:"address" required:"true"`
		Name    string `positional-arg-name:"name"`
	} `positional-args:"yes"`
}

func (c *subscribeCommand) Execute([]string) error {
	return c.app.withRegistry(func(ctx context.Context, r *registry.Registry) error {
		addr, err := r.Subscribe(ctx, c.Args.Chat, c.Args.Address, c.Args.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "following %s\n", describe(addr))
		return nil
	})
}

type unsubscribeCommand struct {
	app  *app
	Args struct {
		Chat    int64  `positional-arg-name:"chat" required:"true"`
		Address string `positional-arg-name:"address" required:"true"`
	} `positional-args:"yes"`
}

func (c *unsubscribeCommand) Execute([]string) error {
	return c.app.withRegistry(func(ctx context.Context, r *registry.Registry) error {
		if err := r.Unsubscribe(ctx, c.Args.Chat, c.Args.Address); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "stopped following %s\n", c.Args.Address)
		return nil
	})
}

type configCommand struct {
	app     *app
	Address string `long:"address" description:"apply to this subscription instead of the user default"`
	Here    int64  `long:"here" description:"chat id that \"here\" refers to; defaults to the user's chat"`
	Args    struct {
		Chat  int64  `positional-arg-name:"chat" required:"true"`
		Key   string `positional-arg-name:"key" required:"true" description:"block.notify, block.stake, block.bal, block.utxo, block.mature, block.total, block.tx or tx.notify"`
		Value string `positional-arg-name:"value" required:"true" description:"hide, show, full, here, priv, both, a chat id, or unset"`
	} `positional-args:"yes"`
}

func (c *configCommand) Execute([]string) error {
	here := c.Here
	if here == 0 {
		here = c.Args.Chat
	}
	value := c.Args.Value
	if value == "unset" {
		value = ""
	}
	return c.app.withRegistry(func(ctx context.Context, r *registry.Registry) error {
		if err := r.SetConfig(ctx, c.Args.Chat, c.Address, c.Args.Key, value, here); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s = %s\n", c.Args.Key, c.Args.Value)
		return nil
	})
}

type listCommand struct {
	app  *app
	Args struct {
		Chat int64 `positional-arg-name:"chat" required:"true"`
	} `positional-args:"yes"`
}

func (c *listCommand) Execute([]string) error {
	return c.app.withRegistry(func(ctx context.Context, r *registry.Registry) error {
		addrs, tokens, err := r.Subscriptions(ctx, c.Args.Chat)
		if err != nil {
			return err
		}
		for _, a := range append(addrs, tokens...) {
			fmt.Fprintln(stdout, describe(a))
		}
		return nil
	})
}

type deleteUserCommand struct {
	app  *app
	Args struct {
		Chat int64 `positional-arg-name:"chat" required:"true"`
	} `positional-args:"yes"`
}

func (c *deleteUserCommand) Execute([]string) error {
	return c.app.withRegistry(func(ctx context.Context, r *registry.Registry) error {
		return r.DeleteUser(ctx, c.Args.Chat)
	})
}

func describe(a model.Address) string {
	s := fmt.Sprintf("%s %s %s", a.Type, a.Native, a.Hex)
	if a.Name != "" {
		s += " " + a.Name
	}
	if a.IsToken() {
		s += " (" + a.Token.Symbol + ")"
	}
	return s
}
