// Command fundbot bootstraps a testnet account: it generates a keypair and
// asks friendbot to fund it, retrying transient faucet failures.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/sethvargo/go-retry"
)

func main() {
	horizonURL := flag.String("horizon", ledger.TestnetURL, "Horizon base URL")
	friendbotURL := flag.String("friendbot", ledger.TestnetFriendbotURL, "friendbot base URL")
	attempts := flag.Uint64("attempts", 5, "friendbot attempts before giving up")
	flag.Parse()

	if err := run(*horizonURL, *friendbotURL, *attempts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(horizonURL, friendbotURL string, attempts uint64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kp, err := ledger.NewRandomKeypair()
	if err != nil {
		return err
	}

	fmt.Println("public key:", kp.Address())
	fmt.Println("secret key:", kp.Seed())

	client := ledger.NewClient(horizonURL, friendbotURL)

	backoff := retry.WithMaxRetries(attempts, retry.NewExponential(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Friendbot(ctx, kp.Address()); err != nil {
			fmt.Fprintln(os.Stderr, "friendbot attempt failed:", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("funding failed: %w", err)
	}

	acct, err := client.LoadAccount(ctx, kp.Address())
	if err != nil {
		return err
	}

	fmt.Println("funded, balance:", acct.NativeBalance())
	return nil
}
