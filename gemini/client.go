// Package gemini retrieves transaction history from the Gemini exchange API
// and exposes it in the same tabular shape as the local exchange exports, so
// the aggregation pipeline consumes remote data unchanged.
package gemini

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"coinsum"
)

// BaseURL is the Gemini REST API endpoint.
const BaseURL = "https://api.gemini.com"

// Environment variables carrying the API credentials, loadable from a .env
// file as well.
const (
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvAPISecret = "GEMINI_API_SECRET"
)

// Client calls the Gemini REST API. Private endpoints are signed with the
// account API key; public ones need no credentials.
type Client struct {
	key    string
	secret string
	base   string
	client *http.Client
}

// NewClient returns a client for the given API credentials.
func NewClient(key, secret string) *Client {
	return &Client{key: key, secret: secret, base: BaseURL, client: newDailyCachingClient()}
}

// FromEnv builds a client from GEMINI_API_KEY and GEMINI_API_SECRET, reading
// a local .env file first if one exists.
func FromEnv() (*Client, error) {
	godotenv.Load()
	key, secret := os.Getenv(EnvAPIKey), os.Getenv(EnvAPISecret)
	if key == "" || secret == "" {
		return nil, fmt.Errorf("missing %s or %s in environment", EnvAPIKey, EnvAPISecret)
	}
	return NewClient(key, secret), nil
}

// trade is one line of the past-trades endpoint. Gemini serializes numbers
// as strings.
type trade struct {
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   int64           `json:"timestamp"`
	Type        string          `json:"type"` // "Buy" or "Sell"
	FeeAmount   decimal.Decimal `json:"fee_amount"`
	FeeCurrency string          `json:"fee_currency"`
}

// post performs a signed private API call. The payload is the base64 of the
// request JSON, authenticated with HMAC-SHA384 per the Gemini API
// conventions.
func (c *Client) post(path string, params map[string]any, out any) error {
	payload := map[string]any{
		"request": path,
		"nonce":   fmt.Sprint(time.Now().UnixNano()),
	}
	for k, v := range params {
		payload[k] = v
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	b64 := base64.StdEncoding.EncodeToString(body)
	mac := hmac.New(sha512.New384, []byte(c.secret))
	mac.Write([]byte(b64))

	req, err := http.NewRequest(http.MethodPost, c.base+path, strings.NewReader(""))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-GEMINI-APIKEY", c.key)
	req.Header.Set("X-GEMINI-PAYLOAD", b64)
	req.Header.Set("X-GEMINI-SIGNATURE", hex.EncodeToString(mac.Sum(nil)))

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http POST %v%v: %v", c.base, path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, out)
}

// trades returns the account's past trades for one symbol, e.g. "BTCUSD".
func (c *Client) trades(symbol string) ([]trade, error) {
	var content []trade
	err := c.post("/v1/mytrades", map[string]any{
		"symbol":       strings.ToLower(symbol),
		"limit_trades": 500,
	}, &content)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch trades for %s: %w", symbol, err)
	}
	return content, nil
}

// Transactions fetches the account's past trades for every asset and lays
// them out as the Gemini transaction-history export: same columns, same cell
// encodings (parenthesized dollar amounts, unit-suffixed quantities). The
// result feeds the pipeline exactly like the exported CSV would.
func (c *Client) Transactions(assets ...string) (*coinsum.Table, error) {
	columns := []string{"Date", "Type", "Symbol", "USD Amount USD", "Fee (USD) USD"}
	for _, asset := range assets {
		columns = append(columns, fmt.Sprintf("%s Amount %s", asset, asset))
	}
	t := coinsum.NewTable(coinsum.GeminiTransactionsFile, columns)

	for i, asset := range assets {
		symbol := asset + "USD"
		trades, err := c.trades(symbol)
		if err != nil {
			return nil, err
		}
		for _, tr := range trades {
			cells := make([]string, len(columns))
			cells[0] = time.Unix(tr.Timestamp, 0).UTC().Format("2006-01-02")
			cells[1] = tr.Type
			cells[2] = symbol
			cells[3] = fmt.Sprintf("($%s)", tr.Price.Mul(tr.Amount).StringFixed(2))
			cells[4] = fmt.Sprintf("($%s)", tr.FeeAmount.StringFixed(2))
			cells[5+i] = fmt.Sprintf("%s %s", tr.Amount.String(), asset)
			t.Append(cells...)
		}
	}
	return t, nil
}

// Loader adapts the client to the pipeline's TableLoader: the Gemini
// transaction table is served from the API, anything else falls back to the
// wrapped loader (typically the export directory).
//
// The table is fetched once and reused: every per-asset pipeline run loads
// the same table, and one run covers all the configured assets.
type Loader struct {
	Client   *Client
	Assets   []string
	Fallback coinsum.TableLoader

	table *coinsum.Table
}

func (l *Loader) Load(name string) (*coinsum.Table, error) {
	if name != coinsum.GeminiTransactionsFile {
		if l.Fallback == nil {
			return nil, fmt.Errorf("%w: %q has no remote equivalent", coinsum.ErrSourceUnavailable, name)
		}
		return l.Fallback.Load(name)
	}
	if l.table == nil {
		t, err := l.Client.Transactions(l.Assets...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", coinsum.ErrSourceUnavailable, err)
		}
		l.table = t
	}
	return l.table, nil
}
