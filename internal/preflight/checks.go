package preflight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const checkTimeout = 5 * time.Second

// CheckTMDB verifies that TMDB is reachable and accepts the API key.
func CheckTMDB(ctx context.Context, baseURL, apiKey string) Result {
	const name = "TMDB"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	endpoint := base + "/configuration?" + url.Values{"api_key": {strings.TrimSpace(apiKey)}}.Encode()
	status, err := get(ctx, endpoint, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%s)", summarizeError(err))}
	}
	switch status {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", status)}
	}
}

// CheckTelegram calls getMe to verify the bot token. endpoint is the Bot API
// format string with placeholders for the token and method.
func CheckTelegram(ctx context.Context, endpoint, token string) Result {
	const name = "Telegram"

	if strings.TrimSpace(token) == "" {
		return Result{Name: name, Detail: "missing bot token"}
	}
	if !strings.Contains(endpoint, "%s") {
		return Result{Name: name, Detail: "invalid api endpoint"}
	}

	var body struct {
		OK     bool `json:"ok"`
		Result struct {
			Username string `json:"username"`
		} `json:"result"`
		Description string `json:"description"`
	}
	status, err := get(ctx, fmt.Sprintf(endpoint, strings.TrimSpace(token), "getMe"), &body)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("getMe failed (%s)", summarizeError(err))}
	}
	switch {
	case status == http.StatusOK && body.OK:
		return Result{Name: name, Passed: true, Detail: "authenticated as @" + body.Result.Username}
	case status == http.StatusUnauthorized || status == http.StatusNotFound:
		return Result{Name: name, Detail: "auth failed (invalid bot token)"}
	case body.Description != "":
		return Result{Name: name, Detail: fmt.Sprintf("getMe failed (%s)", body.Description)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("getMe failed (%d)", status)}
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// get issues a GET and decodes a JSON body into out when out is non-nil and
// the body parses. The status code is returned for any completed request.
func get(ctx context.Context, endpoint string, out any) (int, error) {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	resp, err := (&http.Client{Timeout: checkTimeout}).Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode, nil
}

// summarizeError keeps credentials embedded in request URLs out of the detail.
func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
