// Command stellar is a small ledger CLI: check an account balance or send
// a native payment. The secret comes from -secret, the STELLAR_SECRET
// environment variable, or a hidden terminal prompt.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Berkcanaskin/stellar/internal/ledger"
	"golang.org/x/term"
)

const usage = `usage: stellar <command> [flags]

commands:
  balance   show the account behind a secret key
  pay       send a native payment

flags:
  -horizon url   Horizon base URL (default testnet)
  -secret s      secret key (or STELLAR_SECRET, or prompted)
  -to address    payment destination (pay)
  -amount x      payment amount in units, e.g. 12.5 (pay)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	horizonURL := fs.String("horizon", ledger.TestnetURL, "Horizon base URL")
	secret := fs.String("secret", "", "secret key")
	to := fs.String("to", "", "payment destination")
	amount := fs.String("amount", "", "payment amount")
	passphrase := fs.String("network", ledger.TestnetPassphrase, "network passphrase")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := ledger.NewClient(*horizonURL, ledger.TestnetFriendbotURL)

	var err error
	switch cmd {
	case "balance":
		err = runBalance(ctx, client, *secret)
	case "pay":
		err = runPay(ctx, client, *secret, *to, *amount, *passphrase)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveSecret tries the flag, then the environment, then a hidden prompt.
func resolveSecret(secret string) (string, error) {
	if secret != "" {
		return secret, nil
	}
	if env := os.Getenv("STELLAR_SECRET"); env != "" {
		return env, nil
	}

	fmt.Fprint(os.Stderr, "Secret key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func runBalance(ctx context.Context, client *ledger.Client, secret string) error {
	secret, err := resolveSecret(secret)
	if err != nil {
		return err
	}
	kp, err := ledger.ParseSecret(secret)
	if err != nil {
		return err
	}

	acct, err := client.LoadAccount(ctx, kp.Address())
	if err != nil {
		return err
	}

	fmt.Println("account:", kp.Address())
	for _, b := range acct.Balances {
		code := b.Code
		if b.Type == "native" {
			code = "XLM"
		}
		fmt.Printf("%12s  %s\n", code, b.Balance)
	}
	return nil
}

func runPay(ctx context.Context, client *ledger.Client, secret, to, amount, passphrase string) error {
	if to == "" || amount == "" {
		return fmt.Errorf("pay requires -to and -amount")
	}
	secret, err := resolveSecret(secret)
	if err != nil {
		return err
	}
	kp, err := ledger.ParseSecret(secret)
	if err != nil {
		return err
	}
	if !ledger.IsValidAddress(to) {
		return fmt.Errorf("invalid destination %q", to)
	}
	stroops, err := ledger.ParseAmount(amount)
	if err != nil {
		return err
	}

	acct, err := client.LoadAccount(ctx, kp.Address())
	if err != nil {
		return err
	}
	fee, err := client.FetchBaseFee(ctx)
	if err != nil {
		fee = ledger.DefaultBaseFee
	}

	bounds := ledger.TimeBounds{Max: uint64(time.Now().Add(5 * time.Minute).Unix())}
	tx, err := ledger.BuildPayment(kp, acct.Sequence+1, fee, to, stroops, passphrase, bounds)
	if err != nil {
		return err
	}

	resp, err := client.SubmitTransaction(ctx, tx.EnvelopeXDR)
	if err != nil {
		return err
	}

	fmt.Println("hash:", resp.Hash)
	fmt.Println("ledger:", resp.Ledger)
	return nil
}
