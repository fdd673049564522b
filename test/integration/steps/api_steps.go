package steps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/cucumber/godog"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, "")
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, body.Content)
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func sendRequest(ctx context.Context, method, endpoint, body string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	endpoint, err := tc.expand(endpoint)
	if err != nil {
		return ctx, err
	}
	body, err = tc.expand(body)
	if err != nil {
		return ctx, err
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.server.URL+endpoint, reader)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

// expand replaces {{Category Name}} with that category's id and
// {{transaction:N}} with the id of the N-th fixture transaction (1-based).
func (tc *TestContext) expand(s string) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]

		if idx, ok := strings.CutPrefix(name, "transaction:"); ok {
			var n int
			if _, err := fmt.Sscanf(idx, "%d", &n); err == nil && n >= 1 && n <= len(tc.transactionIDs) {
				return tc.transactionIDs[n-1].String()
			}
			missing = name
			return match
		}

		if id, ok := tc.categoryIDs[name]; ok {
			return id.String()
		}
		missing = name
		return match
	})
	if missing != "" {
		return "", fmt.Errorf("unknown placeholder %q", missing)
	}
	return out, nil
}
