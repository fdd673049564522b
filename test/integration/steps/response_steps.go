package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	_, err := responseField(ctx, field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}

	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, value)
	}
	if len(items) != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expected, len(items))
	}
	return nil
}

// theCategoryBreakdownShouldBe checks category_breakdown in order.
// Columns: category, total, count, percentage.
func theCategoryBreakdownShouldBe(ctx context.Context, table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	value, err := responseField(ctx, "category_breakdown")
	if err != nil {
		return err
	}
	entries, ok := value.([]any)
	if !ok {
		return fmt.Errorf("category_breakdown is not an array")
	}
	if len(entries) != len(rows) {
		return fmt.Errorf("expected %d breakdown entries, got %d", len(rows), len(entries))
	}

	for i, row := range rows {
		entry, ok := entries[i].(map[string]any)
		if !ok {
			return fmt.Errorf("breakdown entry %d is not an object", i)
		}
		checks := map[string]string{
			"category_name": row["category"],
			"total_amount":  row["total"],
			"count":         row["count"],
			"percentage":    row["percentage"],
		}
		for key, want := range checks {
			if want == "" {
				continue
			}
			if got := fmt.Sprintf("%v", entry[key]); got != want {
				return fmt.Errorf("breakdown entry %d field '%s' expected '%s', got '%s'", i, key, want, got)
			}
		}
	}
	return nil
}

// theTransactionAmountsShouldBe checks the listed amounts, comma separated, in order.
func theTransactionAmountsShouldBe(ctx context.Context, expected string) error {
	value, err := responseField(ctx, "transactions")
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("transactions is not an array")
	}

	amounts := make([]string, len(items))
	for i, item := range items {
		txn, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("transaction %d is not an object", i)
		}
		amounts[i] = fmt.Sprintf("%v", txn["amount"])
	}

	if actual := strings.Join(amounts, ","); actual != expected {
		return fmt.Errorf("expected amounts %s, got %s", expected, actual)
	}
	return nil
}

func theResponseShouldMatchJSON(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var expected, actual any

	if err := json.Unmarshal([]byte(body.Content), &expected); err != nil {
		return fmt.Errorf("failed to parse expected JSON: %w", err)
	}

	if err := json.Unmarshal(tc.responseBody, &actual); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	expectedJSON, _ := json.Marshal(expected)
	actualJSON, _ := json.Marshal(actual)

	if string(expectedJSON) != string(actualJSON) {
		return fmt.Errorf("expected JSON:\n%s\nactual JSON:\n%s", string(expectedJSON), string(actualJSON))
	}

	return nil
}

// responseField resolves a dotted path such as "current.total_amount" or
// "category_breakdown.0.category_name" in the JSON response.
func responseField(ctx context.Context, path string) (any, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}

	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(tc.responseBody))
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}
