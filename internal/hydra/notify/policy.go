package notify

import "github.com/goodnatureofminers/hydrawatch/internal/hydra/model"

// Policy is a fully resolved configuration for one subscription.
type Policy struct {
	Notify   model.Notify
	Stake    model.Verbosity
	Bal      model.Verbosity
	UTXO     model.Verbosity
	Mature   model.Verbosity
	Total    model.Verbosity
	TX       model.Verbosity
	TxNotify model.Notify
}

// DefaultPolicy applies when neither the subscription nor the user sets a key.
var DefaultPolicy = Policy{
	Notify:   model.Notify{Mode: model.NotifyPriv},
	Stake:    model.Hide,
	Bal:      model.Hide,
	UTXO:     model.Show,
	Mature:   model.Hide,
	Total:    model.Hide,
	TX:       model.Show,
	TxNotify: model.Notify{Mode: model.NotifyPriv},
}

// Resolve picks every key from the subscription override, then the user
// default, then DefaultPolicy.
func Resolve(user, override model.Config) Policy {
	p := DefaultPolicy
	for _, cfg := range []model.Config{user, override} {
		b := cfg.Block
		setNotify(&p.Notify, b.Notify)
		setVerbosity(&p.Stake, b.Stake)
		setVerbosity(&p.Bal, b.Bal)
		setVerbosity(&p.UTXO, b.UTXO)
		setVerbosity(&p.Mature, b.Mature)
		setVerbosity(&p.Total, b.Total)
		setVerbosity(&p.TX, b.TX)
		setNotify(&p.TxNotify, cfg.Tx.Notify)
	}
	return p
}

func setVerbosity(dst *model.Verbosity, v *model.Verbosity) {
	if v != nil {
		*dst = *v
	}
}

func setNotify(dst *model.Notify, v *model.Notify) {
	if v != nil {
		*dst = *v
	}
}

// Destinations lists the chats a notify setting routes to. private is the
// subscriber's own chat.
func Destinations(n model.Notify, private int64) []int64 {
	switch n.Mode {
	case model.NotifyHide:
		return nil
	case model.NotifyChat:
		if n.Chat < 0 {
			return []int64{n.Chat}
		}
		return []int64{-n.Chat, private}
	default:
		return []int64{private}
	}
}
