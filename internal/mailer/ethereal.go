package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const etherealAccountURL = "https://api.nodemailer.com/user"

type etherealAccount struct {
	User string `json:"user"`
	Pass string `json:"pass"`
	SMTP struct {
		Host   string `json:"host"`
		Port   int    `json:"port"`
		Secure bool   `json:"secure"`
	} `json:"smtp"`
}

// createEtherealAccount requests a disposable SMTP sandbox account from the
// Ethereal service. Sent mail never leaves the sandbox and can be inspected
// in its web UI with the returned credentials.
func createEtherealAccount(ctx context.Context, endpoint string) (*etherealAccount, error) {
	body := strings.NewReader(`{"requestor":"teamreg-backend","version":"1.0.0"}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("ethereal account request returned status %d", resp.StatusCode)
	}

	account := &etherealAccount{}
	if err = json.NewDecoder(resp.Body).Decode(account); err != nil {
		return nil, errors.Wrap(err, "failed to decode ethereal account response")
	}

	if account.User == "" || account.Pass == "" {
		return nil, errors.New("ethereal account response missing credentials")
	}

	return account, nil
}
