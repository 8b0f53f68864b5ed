// Package breach wraps the third-party breach-lookup APIs behind small
// clients with normalized result shapes. Nothing here scores anything; these
// are plain proxied lookups.
package breach

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/secscope/secscope/internal/shared/constants"
	secerrors "github.com/secscope/secscope/internal/shared/errors"
)

const defaultRangeBaseURL = "https://api.pwnedpasswords.com"

// PasswordResult reports whether a password appears in known breach corpora
// and how many times it was seen.
type PasswordResult struct {
	Breached bool `json:"breached"`
	Count    int  `json:"count"`
}

// PasswordClient checks passwords against the k-anonymity range API: only
// the first five hex characters of the SHA-1 hash ever leave the process.
type PasswordClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewPasswordClient builds a client with the given upstream timeout.
func NewPasswordClient(timeout time.Duration) *PasswordClient {
	if timeout <= 0 {
		timeout = constants.DefaultUpstreamTimeout
	}
	return &PasswordClient{
		BaseURL:    defaultRangeBaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Check hashes the password, queries the hash-prefix range, and scans the
// returned suffix list for a match.
func (c *PasswordClient) Check(ctx context.Context, password string) (PasswordResult, error) {
	if password == "" {
		return PasswordResult{}, secerrors.ErrEmptyPassword
	}

	// SHA-1 is mandated by the range API's k-anonymity scheme.
	sum := sha1.Sum([]byte(password)) // #nosec G401
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:5], digest[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/range/"+prefix, nil)
	if err != nil {
		return PasswordResult{}, fmt.Errorf("build range request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return PasswordResult{}, fmt.Errorf("%w: %v", secerrors.ErrPasswordAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PasswordResult{}, fmt.Errorf("%w: unexpected status %d", secerrors.ErrPasswordAPIFailure, resp.StatusCode)
	}

	count, err := scanRange(resp.Body, suffix)
	if err != nil {
		return PasswordResult{}, fmt.Errorf("%w: %v", secerrors.ErrPasswordAPIFailure, err)
	}
	return PasswordResult{Breached: count > 0, Count: count}, nil
}

// scanRange walks the "SUFFIX:COUNT" response lines looking for our suffix.
func scanRange(r io.Reader, suffix string) (int, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.TrimSpace(parts[0]) != suffix {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, fmt.Errorf("malformed count in range response: %q", line)
		}
		return count, nil
	}
	return 0, scanner.Err()
}
