package main

import (
	"testing"
)

func TestParseArgs(t *testing.T) {

	config := Config{
		ServiceID:    "srv-env456",
		MaxInstances: 4,
	}

	serviceID, target, err := parseArgs([]string{"srv-abc123", "3"}, config)
	if err != nil {
		t.Errorf("unexpected failure to parse arguments: %s", err)
	}
	if serviceID != "srv-abc123" || target != 3 {
		t.Errorf("unexpected parse result: %s, %d", serviceID, target)
	}

	serviceID, target, err = parseArgs([]string{"3"}, config)
	if err != nil {
		t.Errorf("unexpected failure to parse arguments with environment fallback: %s", err)
	}
	if serviceID != "srv-env456" || target != 3 {
		t.Errorf("unexpected parse result: %s, %d", serviceID, target)
	}

	// With no target the ramp walks to the configured maximum
	serviceID, target, err = parseArgs([]string{}, config)
	if err != nil {
		t.Errorf("unexpected failure to parse arguments without a target: %s", err)
	}
	if serviceID != "srv-env456" || target != 4 {
		t.Errorf("unexpected parse result: %s, %d", serviceID, target)
	}

	_, _, err = parseArgs([]string{"3"}, Config{MaxInstances: 4})
	if err == nil {
		t.Errorf("expected failure to parse arguments without a service ID, but passed")
	}

	_, _, err = parseArgs([]string{"3.5"}, config)
	if err == nil {
		t.Errorf("expected failure to parse a non-integer target, but passed")
	}

	_, _, err = parseArgs([]string{"a", "b", "c"}, config)
	if err == nil {
		t.Errorf("expected failure to parse too many arguments, but passed")
	}
}
