/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// runCLI runs the command against the in-memory backend.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("DOCSTORE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	envFile := filepath.Join(t.TempDir(), "none.env")
	code := run(context.Background(), append([]string{"-env", envFile}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeRecords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write records: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 || !strings.HasPrefix(out, "docstore ") {
		t.Errorf("Unexpected version output (%d): %q", code, out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"NoCommand", nil},
		{"UnknownCommand", []string{"drop"}},
		{"ExistsWithoutArgs", []string{"exists"}},
		{"BulkWithoutTarget", []string{"bulk", "-op", "create"}},
		{"BulkBadOp", []string{"bulk", "-op", "delete", "-db", "d", "-container", "c"}},
		{"BulkBadKeys", []string{"bulk", "-db", "d", "-container", "c", "-keys", "SK=x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 2 {
				t.Errorf("Expected exit code 2, got %d", code)
			}
			if !strings.Contains(stderr, "usage: docstore") {
				t.Errorf("Expected usage text, got %q", stderr)
			}
		})
	}
}

func TestBulkCreate(t *testing.T) {
	path := writeRecords(t, `[{"id":"a","n":1},{"id":"b","n":2},{"n":3}]`)

	code, out, stderr := runCLI(t, "bulk", "-op", "create", "-db", "app", "-container", "items", "-file", path)
	if code != 0 {
		t.Fatalf("Expected success, got %d: %s", code, stderr)
	}
	if !strings.HasPrefix(out, "create: 3 dispatched, 0 failed") {
		t.Errorf("Unexpected summary %q", out)
	}
}

func TestBulkCreateReportsConflicts(t *testing.T) {
	path := writeRecords(t, `[{"id":"a"},{"id":"a"},{"id":"b"}]`)

	code, out, _ := runCLI(t, "bulk", "-op", "create", "-db", "app", "-container", "items", "-file", path)
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected summary and one failure, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "create: 3 dispatched, 1 failed") {
		t.Errorf("Unexpected summary %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Received Conflict (") {
		t.Errorf("Unexpected failure entry %q", lines[1])
	}
}

func TestBulkBadFile(t *testing.T) {
	code, _, stderr := runCLI(t, "bulk", "-db", "app", "-container", "items", "-file", writeRecords(t, `{"id":"a"}`))
	if code != 1 || !strings.Contains(stderr, "decode records") {
		t.Errorf("Expected decode failure, got %d: %s", code, stderr)
	}
}

func TestExistsAndList(t *testing.T) {
	code, out, _ := runCLI(t, "exists", "app")
	if code != 0 || strings.TrimSpace(out) != "false" {
		t.Errorf("Expected empty catalog, got %d %q", code, out)
	}

	code, out, _ = runCLI(t, "list", "-db", "app", "-container", "items")
	if code != 0 || out != "" {
		t.Errorf("Expected no records, got %d %q", code, out)
	}
}

func TestParseKeys(t *testing.T) {
	got, err := parseKeys("PK=USER#{id}, SK=PROFILE")
	if err != nil {
		t.Fatalf("parseKeys failed: %v", err)
	}
	want := map[string]string{"PK": "USER#{id}", "SK": "PROFILE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	for _, bad := range []string{"", "PK", "SK=x", "PK="} {
		if _, err := parseKeys(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestDocumentID(t *testing.T) {
	if documentID(document{"id": 42.0}) != "42" {
		t.Error("Expected numeric id rendered")
	}
	if documentID(document{"name": "x"}) != "" {
		t.Error("Expected empty id")
	}
}
