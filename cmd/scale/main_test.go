package main

import (
	"testing"
)

func TestParseArgs(t *testing.T) {

	serviceID, rawCount, err := parseArgs([]string{"srv-abc123", "5"}, "")
	if err != nil {
		t.Errorf("unexpected failure to parse arguments: %s", err)
	}
	if serviceID != "srv-abc123" || rawCount != "5" {
		t.Errorf("unexpected parse result: %s, %s", serviceID, rawCount)
	}

	serviceID, rawCount, err = parseArgs([]string{"5"}, "srv-env456")
	if err != nil {
		t.Errorf("unexpected failure to parse arguments with environment fallback: %s", err)
	}
	if serviceID != "srv-env456" || rawCount != "5" {
		t.Errorf("unexpected parse result: %s, %s", serviceID, rawCount)
	}

	_, _, err = parseArgs([]string{"5"}, "")
	if err == nil {
		t.Errorf("expected failure to parse arguments without a service ID, but passed")
	}

	_, _, err = parseArgs([]string{}, "srv-env456")
	if err == nil {
		t.Errorf("expected failure to parse arguments without a count, but passed")
	}
}

func TestParseCount(t *testing.T) {

	count, relative, err := parseCount("5")
	if err != nil {
		t.Errorf("unexpected failure to parse count: %s", err)
	}
	if count != 5 || relative {
		t.Errorf("unexpected parse result: %d, relative %t", count, relative)
	}

	count, relative, err = parseCount("+2")
	if err != nil {
		t.Errorf("unexpected failure to parse relative count: %s", err)
	}
	if count != 2 || !relative {
		t.Errorf("unexpected parse result: %d, relative %t", count, relative)
	}

	count, relative, err = parseCount("-3")
	if err != nil {
		t.Errorf("unexpected failure to parse relative count: %s", err)
	}
	if count != -3 || !relative {
		t.Errorf("unexpected parse result: %d, relative %t", count, relative)
	}

	// Anything that isn't an integer is rejected before any API call
	for _, raw := range []string{"five", "", "2.5", "2x"} {
		_, _, err = parseCount(raw)
		if err == nil {
			t.Errorf("expected failure to parse count %q, but passed", raw)
		}
	}
}
