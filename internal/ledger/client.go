package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// TestnetURL is the default Horizon instance.
	TestnetURL = "https://horizon-testnet.stellar.org"

	// TestnetFriendbotURL funds fresh testnet accounts.
	TestnetFriendbotURL = "https://friendbot.stellar.org"

	// TestnetPassphrase scopes signatures to the test network.
	TestnetPassphrase = "Test SDF Network ; September 2015"

	// DefaultBaseFee is used when the fee endpoint cannot be reached.
	DefaultBaseFee = 100
)

// ErrAccountNotFound is returned when Horizon reports 404 for an account.
var ErrAccountNotFound = errors.New("account not found")

// Error is a structured rejection from Horizon, carrying the result codes
// the network attached to a refused transaction.
type Error struct {
	Status          int
	Title           string
	TransactionCode string
	OperationCodes  []string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("horizon: %s (status %d)", e.Title, e.Status)
	if e.TransactionCode != "" {
		msg += ": " + e.TransactionCode
	}
	if len(e.OperationCodes) > 0 {
		msg += " [" + strings.Join(e.OperationCodes, ", ") + "]"
	}
	return msg
}

// Balance is one asset position on an account. Type is Horizon's asset_type
// ("native" or a credit type); Code is empty for the native asset.
type Balance struct {
	Balance string `json:"balance"`
	Type    string `json:"asset_type"`
	Code    string `json:"asset_code"`
}

// Account is the subset of Horizon's account resource the platform uses.
type Account struct {
	ID       string    `json:"id"`
	Sequence int64     `json:"sequence,string"`
	Balances []Balance `json:"balances"`
}

// NativeBalance returns the native-asset balance as a float, or 0 if the
// account holds none or the value does not parse.
func (a *Account) NativeBalance() float64 {
	for _, b := range a.Balances {
		if b.Type == "native" {
			v, err := strconv.ParseFloat(b.Balance, 64)
			if err != nil {
				return 0
			}
			return v
		}
	}
	return 0
}

// PaymentRecord is one entry from the payments endpoint.
type PaymentRecord struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

// OperationRecord is one entry from the operations endpoint.
type OperationRecord struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

// SubmitResponse is Horizon's answer to an accepted transaction.
type SubmitResponse struct {
	Hash       string `json:"hash"`
	Ledger     int64  `json:"ledger"`
	Successful bool   `json:"successful"`
	ResultXDR  string `json:"result_xdr"`

	// Raw preserves the full Horizon response body for callers that want
	// to pass it through unchanged.
	Raw json.RawMessage `json:"-"`
}

// Client talks to a Horizon-compatible API. It imposes no timeout of its
// own; cancel the context to bound a call.
type Client struct {
	horizonURL   string
	friendbotURL string
	http         *http.Client
}

func NewClient(horizonURL, friendbotURL string) *Client {
	return &Client{
		horizonURL:   strings.TrimRight(horizonURL, "/"),
		friendbotURL: friendbotURL,
		http:         &http.Client{},
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.horizonURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return decodeProblem(resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}

// decodeProblem turns a Horizon problem+json body into an *Error.
func decodeProblem(status int, body []byte) error {
	problem := struct {
		Title  string `json:"title"`
		Extras struct {
			ResultCodes struct {
				Transaction string   `json:"transaction"`
				Operations  []string `json:"operations"`
			} `json:"result_codes"`
		} `json:"extras"`
	}{}
	if err := json.Unmarshal(body, &problem); err != nil || problem.Title == "" {
		return &Error{Status: status, Title: http.StatusText(status)}
	}
	return &Error{
		Status:          status,
		Title:           problem.Title,
		TransactionCode: problem.Extras.ResultCodes.Transaction,
		OperationCodes:  problem.Extras.ResultCodes.Operations,
	}
}

// LoadAccount fetches the current account state (sequence and balances).
func (c *Client) LoadAccount(ctx context.Context, publicKey string) (*Account, error) {
	var acct Account
	err := c.get(ctx, "/accounts/"+url.PathEscape(publicKey), &acct)
	if err != nil {
		var herr *Error
		if errors.As(err, &herr) && herr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, publicKey)
		}
		return nil, err
	}
	return &acct, nil
}

// FetchBaseFee returns the network-recommended per-operation fee in stroops.
func (c *Client) FetchBaseFee(ctx context.Context) (int64, error) {
	var stats struct {
		LastLedgerBaseFee int64 `json:"last_ledger_base_fee,string"`
	}
	if err := c.get(ctx, "/fee_stats", &stats); err != nil {
		return 0, err
	}
	if stats.LastLedgerBaseFee <= 0 {
		return DefaultBaseFee, nil
	}
	return stats.LastLedgerBaseFee, nil
}

// SubmitTransaction posts a signed envelope. A structured rejection comes
// back as *Error with the network's result codes preserved.
func (c *Client) SubmitTransaction(ctx context.Context, envelopeXDR string) (*SubmitResponse, error) {
	form := url.Values{"tx": {envelopeXDR}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.horizonURL+"/transactions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeProblem(resp.StatusCode, body)
	}

	var sr SubmitResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, err
	}
	sr.Raw = body
	return &sr, nil
}

type recordsPage[T any] struct {
	Embedded struct {
		Records []T `json:"records"`
	} `json:"_embedded"`
}

// Payments lists payment-type records for an account. order is "asc" or
// "desc"; limit caps the page size (Horizon maximum is 200).
func (c *Client) Payments(ctx context.Context, publicKey string, limit int, order string) ([]PaymentRecord, error) {
	var page recordsPage[PaymentRecord]
	path := fmt.Sprintf("/accounts/%s/payments?limit=%d&order=%s", url.PathEscape(publicKey), limit, url.QueryEscape(order))
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return page.Embedded.Records, nil
}

// Operations lists operations touching an account, most generic history view.
func (c *Client) Operations(ctx context.Context, publicKey string, limit int, order string) ([]OperationRecord, error) {
	var page recordsPage[OperationRecord]
	path := fmt.Sprintf("/accounts/%s/operations?limit=%d&order=%s", url.PathEscape(publicKey), limit, url.QueryEscape(order))
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return page.Embedded.Records, nil
}

// Friendbot asks the testnet faucet to create and fund the account.
// Demo/bootstrap tooling only.
func (c *Client) Friendbot(ctx context.Context, publicKey string) error {
	u := c.friendbotURL + "?addr=" + url.QueryEscape(publicKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("friendbot: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
