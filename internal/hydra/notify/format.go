package notify

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// Formatter renders notification text. It performs no I/O.
type Formatter struct {
	explorer string
}

// NewFormatter builds a formatter linking to the explorer at baseURL.
func NewFormatter(baseURL string) *Formatter {
	return &Formatter{explorer: strings.TrimRight(baseURL, "/")}
}

// Subject is the subscribed address a message is about.
type Subject struct {
	Ref          model.AddressRef
	Subscription model.Subscription
}

func (s Subject) name() string {
	return displayName(s.Subscription, s.Ref)
}

// Block renders the message for a block staked by the subject.
func (f *Formatter) Block(block model.Block, delta model.AddressDelta, subj Subject, p Policy, quote Quote) Message {
	lines := []string{
		fmt.Sprintf("<b>%s mined block %s!</b>", f.addressLink(subj), f.blockLink(block)),
		"",
	}

	if p.Bal != model.Hide && delta.InfoNew.Balance != 0 {
		lines = append(lines, "<b>Balance:</b> "+amount(delta.InfoNew.Balance)+" HYDRA")
	}

	reward, rewardTx := int64(0), model.Transaction{}
	if tx, ok := block.RewardTx(); ok {
		rewardTx = tx
		reward = Reward(tx, delta.Address)
	}
	lines = append(lines, fmt.Sprintf("<b>Reward:</b> %s HYDRA", f.txLink(rewardTx.TxID, signed(reward))))
	if quote.Valid() {
		lines = append(lines, fmt.Sprintf("<b>Value:</b> %s @ <b>%s</b>",
			quote.format(quote.Value(reward)), quote.format(floorCents(quote.Price))))
	}

	if s, ok := staking(p.Stake, delta); ok {
		lines = append(lines, "<b>Staking:</b> "+s)
	}

	if p.UTXO != model.Hide {
		lines = append(lines, utxoLine(p.UTXO, UTXOs(rewardTx, delta.Address)))
	}

	if p.Total != model.Hide {
		lines = append(lines, totals(p.Total, subj.Subscription.BlockCount, delta.InfoNew.BlocksMined)...)
	}

	lines = append(lines, "")
	if last := delta.PrevBlockAt; last != nil && !block.Time.IsZero() {
		lines = append(lines, fmt.Sprintf("Last block mined <b>%s</b> ago:\n<b>%s</b>",
			since(block.Time.Sub(*last)), stamp(*last)))
	}
	lines = append(lines, "<b>"+stamp(block.Time)+"</b>")

	return render(lines)
}

// Mature renders the message for a staked block whose reward matured.
func (f *Formatter) Mature(block model.Block, delta model.AddressDelta, subj Subject) Message {
	rewardTx, _ := block.RewardTx()
	out := UTXOs(rewardTx, delta.Address).Total

	matured := fmt.Sprintf("Matured: %s", signed(out))
	if d := delta.InfoNew.Mature - delta.InfoOld.Mature; d != 0 && d != out {
		matured += " (" + signed(d) + ")"
	}

	lines := []string{
		fmt.Sprintf("<b>%s block %s has matured!</b>", f.addressLink(subj), f.blockLink(block)),
		"",
		fmt.Sprintf("<b>Reward:</b> %s HYDRA", f.txLink(rewardTx.TxID, signed(Reward(rewardTx, delta.Address)))),
		matured,
	}
	if s, ok := staking(model.Full, delta); ok {
		lines = append(lines, "Staking: "+s)
	}
	return render(lines)
}

// Tx renders the transactions of a block that touched the subject.
func (f *Formatter) Tx(block model.Block, act Activity, subj Subject, quote Quote) Message {
	count := "a"
	if len(act.Txs) > 1 {
		count = words(len(act.Txs))
	}
	lines := []string{
		fmt.Sprintf("%s has %s new %s in block %s!",
			f.addressLink(subj), count, plural(max(len(act.Txs), 1), "transaction"), f.blockLink(block)),
		"",
	}

	if act.Net != 0 {
		label := "Sent"
		if act.Net < 0 {
			label = "Received"
		}
		if len(act.Txs) == 1 {
			label = f.txLink(act.Txs[0].TxID, label)
		}
		line := fmt.Sprintf("<b>%s:</b> %s HYDRA", label, amount(abs(act.Net)))
		if quote.Valid() {
			line += " ~ " + quote.format(quote.Value(abs(act.Net)))
		}
		lines = append(lines, line)
	}

	if act.FeesTotal != 0 {
		label := "Fees"
		if act.FeesTotal < 0 {
			label = "Fee Reward"
		}
		if len(act.Txs) == 1 && act.Net == 0 {
			label = f.txLink(act.Txs[0].TxID, label)
		}
		line := fmt.Sprintf("<b>%s:</b> %s HYDRA", label, amount(abs(act.FeesTotal)))
		if quote.Valid() {
			line += " ~ " + quote.format(quote.Value(abs(act.FeesTotal)))
		}
		lines = append(lines, line)
	}

	if len(act.Txs) > 1 {
		for _, tx := range act.Txs {
			lines = append(lines, fmt.Sprintf("<b>- %s:</b> %s", f.txLink(tx.TxID, fmt.Sprintf("TX%d", tx.N)), signed(-tx.Net)))
		}
	}

	if len(act.Tokens) > 0 {
		if lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		for _, t := range act.Tokens {
			lines = append(lines, f.tokenLine(t))
		}
	}

	if lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	lines = append(lines, "<b>"+stamp(block.Time)+"</b>")
	return render(lines)
}

// Summary renders the current state of the subject.
func (f *Formatter) Summary(info model.AccountInfo, subj Subject, quote Quote) Message {
	lines := []string{
		"<b>" + f.addressLink(subj) + "</b>",
		"",
	}
	bal := "<b>Balance:</b> " + amount(info.Balance) + " HYDRA"
	if quote.Valid() {
		bal += " ~ " + quote.format(quote.Value(info.Balance))
	}
	lines = append(lines, bal)
	if info.Staking != 0 {
		lines = append(lines, "<b>Staking:</b> "+amount(info.Staking))
	}
	if info.Mature != 0 && info.Mature != info.Balance {
		lines = append(lines, "<b>Mature:</b> "+amount(info.Mature))
	}
	if info.BlocksMined != 0 {
		lines = append(lines, fmt.Sprintf("<b>Blocks mined:</b> %d", info.BlocksMined))
	}

	if len(info.TokenBalances) > 0 {
		tokens := make([]string, 0, len(info.TokenBalances))
		for hex := range info.TokenBalances {
			tokens = append(tokens, hex)
		}
		sort.Strings(tokens)
		lines = append(lines, "")
		for _, hex := range tokens {
			lines = append(lines, fmt.Sprintf("%s: %s", f.link("address", hex, shorten(hex)), tokenAmount(info.TokenBalances[hex])))
		}
	}
	return render(lines)
}

func (f *Formatter) tokenLine(t TokenLine) string {
	action := map[TokenAction]string{
		TokenMint:     "Mint",
		TokenBurn:     "Burn",
		TokenSend:     "Send",
		TokenReceive:  "Receive",
		TokenTransfer: "Transfer",
	}[t.Action]

	tt := t.Transfer
	symbol := tt.Symbol
	if symbol == "" {
		symbol = shorten(tt.Contract)
	}
	token := f.link("address", tt.Contract, symbol)

	if tt.IsNFT() {
		return fmt.Sprintf("<b>%s:</b> %s ID #%s", f.txLink(t.TxID, action+" NFT"), token, html.EscapeString(tt.TokenID))
	}
	return fmt.Sprintf("<b>%s:</b> %s %s", f.txLink(t.TxID, action), tokenAmount(tt.Value), token)
}

func (f *Formatter) addressLink(subj Subject) string {
	id := subj.Ref.Native
	if id == "" {
		id = subj.Ref.Hex
	}
	return f.link("address", id, subj.name())
}

func (f *Formatter) blockLink(block model.Block) string {
	return f.link("block", fmt.Sprint(block.Height), fmt.Sprintf("#%d", block.Height))
}

func (f *Formatter) txLink(txid, text string) string {
	if txid == "" {
		return text
	}
	return f.link("tx", txid, text)
}

func (f *Formatter) link(kind, id, text string) string {
	if f.explorer == "" {
		return html.EscapeString(text)
	}
	return fmt.Sprintf(`<a href="%s/%s/%s">%s</a>`, f.explorer, kind, id, html.EscapeString(text))
}

// staking renders the staking line. full adds the change since the previous
// snapshot unless the whole amount is new.
func staking(v model.Verbosity, delta model.AddressDelta) (string, bool) {
	total := delta.InfoNew.Staking
	switch v {
	case model.Show:
		return amount(total), true
	case model.Full:
		s := signed(total)
		if d := total - delta.InfoOld.Staking; d != 0 && d != total {
			s += " (" + signed(d) + ")"
		}
		return s, true
	default:
		return "", false
	}
}

func utxoLine(v model.Verbosity, c UTXOChange) string {
	if v != model.Full {
		return fmt.Sprintf("<b>UTXOs:</b> %s (%d ➔ %d)", signed(c.Total), c.Inputs, c.Outputs)
	}
	verb := map[UTXOKind]string{UTXOMerge: "Merged", UTXOSplit: "Split", UTXOUpdate: "Updated"}[c.Kind()]
	s := fmt.Sprintf("<b>%s</b> %s %s", verb, words(c.Inputs), plural(c.Inputs, "UTXO"))
	if c.Inputs != c.Outputs {
		s += " into " + words(c.Outputs)
	}
	return s + fmt.Sprintf(" with a total output of about %s HYDRA.", amount(c.Total))
}

func totals(v model.Verbosity, subscribed, mined int64) []string {
	if subscribed == 0 && mined == 0 {
		return nil
	}
	lines := []string{""}
	if v == model.Show {
		if subscribed != 0 {
			lines = append(lines, fmt.Sprintf("<b>Watched blocks:</b> %d", subscribed))
		}
		if mined != 0 {
			lines = append(lines, fmt.Sprintf("<b>Total blocks minted:</b> %d", mined))
		}
		return lines
	}

	var s string
	if subscribed != 0 {
		s = fmt.Sprintf("This is your %s watched block", ordinal(subscribed))
	}
	if mined != 0 {
		if s != "" {
			s += " and the "
		} else {
			s = "This is the "
		}
		s += ordinal(mined) + " block mined by this address."
	}
	return append(lines, s)
}

func since(d time.Duration) string {
	d = d.Round(time.Minute)
	if d < time.Minute {
		return "less than a minute"
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	var parts []string
	for _, p := range []struct {
		n    time.Duration
		unit string
	}{{days, "day"}, {hours, "hour"}, {minutes, "minute"}} {
		if p.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", p.n, plural(int(p.n), p.unit)))
		}
	}
	return strings.Join(parts, " ")
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.ANSIC) + " UTC"
}

func shorten(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:6] + ".." + s[len(s)-4:]
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func render(lines []string) Message {
	return Message{Text: strings.Join(lines, "\n"), ParseMode: ParseModeHTML}
}
