package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Verbosity controls how much of a notification section is rendered.
type Verbosity string

var (
	Hide Verbosity = "hide"
	Show Verbosity = "show"
	Full Verbosity = "full"
)

// ParseVerbosity validates a verbosity keyword.
func ParseVerbosity(s string) (Verbosity, error) {
	switch v := Verbosity(strings.ToLower(strings.TrimSpace(s))); v {
	case Hide, Show, Full:
		return v, nil
	default:
		return "", fmt.Errorf("unknown verbosity %q", s)
	}
}

// NotifyMode selects where notifications are delivered.
type NotifyMode string

var (
	NotifyPriv NotifyMode = "priv"
	NotifyHide NotifyMode = "hide"
	NotifyChat NotifyMode = "chat"
)

// Notify is a delivery target. A negative Chat routes to that group only; a
// positive Chat routes to group -Chat and to the private chat as well.
type Notify struct {
	Mode NotifyMode
	Chat int64
}

// ParseNotify reads a notify keyword. "here" and "both" bind to the chat the
// setting was issued from, which must be a group (negative id).
func ParseNotify(s string, here int64) (Notify, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "priv":
		return Notify{Mode: NotifyPriv}, nil
	case "hide":
		return Notify{Mode: NotifyHide}, nil
	case "here":
		if here >= 0 {
			return Notify{}, fmt.Errorf("notify %q requires a group chat", s)
		}
		return Notify{Mode: NotifyChat, Chat: here}, nil
	case "both":
		if here >= 0 {
			return Notify{}, fmt.Errorf("notify %q requires a group chat", s)
		}
		return Notify{Mode: NotifyChat, Chat: -here}, nil
	}
	chat, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || chat == 0 {
		return Notify{}, fmt.Errorf("unknown notify target %q", s)
	}
	return Notify{Mode: NotifyChat, Chat: chat}, nil
}

// MarshalJSON encodes chat targets as numbers and modes as strings.
func (n Notify) MarshalJSON() ([]byte, error) {
	if n.Mode == NotifyChat {
		return json.Marshal(n.Chat)
	}
	return json.Marshal(string(n.Mode))
}

// UnmarshalJSON accepts either a mode string or a chat id number.
func (n *Notify) UnmarshalJSON(data []byte) error {
	var chat int64
	if err := json.Unmarshal(data, &chat); err == nil {
		*n = Notify{Mode: NotifyChat, Chat: chat}
		return nil
	}
	var mode string
	if err := json.Unmarshal(data, &mode); err != nil {
		return fmt.Errorf("decode notify: %w", err)
	}
	switch NotifyMode(mode) {
	case NotifyPriv, NotifyHide:
		*n = Notify{Mode: NotifyMode(mode)}
		return nil
	default:
		return fmt.Errorf("unknown notify mode %q", mode)
	}
}

// BlockConfig holds the block section. Nil fields are unset and inherit.
type BlockConfig struct {
	Notify *Notify    `json:"notify,omitempty"`
	Stake  *Verbosity `json:"stake,omitempty"`
	Bal    *Verbosity `json:"bal,omitempty"`
	UTXO   *Verbosity `json:"utxo,omitempty"`
	Mature *Verbosity `json:"mature,omitempty"`
	Total  *Verbosity `json:"total,omitempty"`
	TX     *Verbosity `json:"tx,omitempty"`
}

// TxConfig holds the tx section.
type TxConfig struct {
	Notify *Notify `json:"notify,omitempty"`
}

// Config is a user default or a per-subscription override.
type Config struct {
	Block BlockConfig `json:"block"`
	Tx    TxConfig    `json:"tx"`
}

// Set assigns a "section.name" key. An empty value unsets the key.
func (c *Config) Set(key, value string, here int64) error {
	if value == "" {
		return c.unset(key)
	}
	if strings.HasSuffix(key, ".notify") {
		n, err := ParseNotify(value, here)
		if err != nil {
			return err
		}
		switch key {
		case "block.notify":
			c.Block.Notify = &n
		case "tx.notify":
			c.Tx.Notify = &n
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		return nil
	}

	v, err := ParseVerbosity(value)
	if err != nil {
		return err
	}
	field, err := c.verbosityField(key)
	if err != nil {
		return err
	}
	*field = &v
	return nil
}

func (c *Config) unset(key string) error {
	switch key {
	case "block.notify":
		c.Block.Notify = nil
		return nil
	case "tx.notify":
		c.Tx.Notify = nil
		return nil
	}
	field, err := c.verbosityField(key)
	if err != nil {
		return err
	}
	*field = nil
	return nil
}

func (c *Config) verbosityField(key string) (**Verbosity, error) {
	switch key {
	case "block.stake":
		return &c.Block.Stake, nil
	case "block.bal":
		return &c.Block.Bal, nil
	case "block.utxo":
		return &c.Block.UTXO, nil
	case "block.mature":
		return &c.Block.Mature, nil
	case "block.total":
		return &c.Block.Total, nil
	case "block.tx":
		return &c.Block.TX, nil
	default:
		return nil, fmt.Errorf("unknown config key %q", key)
	}
}

// IsZero reports whether no key is set.
func (c Config) IsZero() bool {
	return c == Config{}
}
