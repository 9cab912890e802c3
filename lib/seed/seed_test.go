// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
)

func TestDefaultSeed(t *testing.T) {
	seed := Default()

	if len(seed.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(seed.Categories))
	}
	if seed.WidgetCount() != 5 {
		t.Errorf("expected 5 widgets, got %d", seed.WidgetCount())
	}

	cspm := seed.Categories[0]
	if cspm.ID != "cspm-executive-dashboard" || cspm.Name != "CSPM Executive Dashboard" {
		t.Errorf("first category = %s %q", cspm.ID, cspm.Name)
	}
	accounts := cspm.Widgets[0]
	if accounts.Payload.Kind != dashboard.KindConnections ||
		accounts.Payload.Connections.Connected != 3 || accounts.Payload.Connections.NotConnected != 2 {
		t.Errorf("cloud accounts payload = %+v", accounts.Payload)
	}
	risk := cspm.Widgets[1].Payload.Risk
	if risk == nil || risk.Total != 7253 || risk.Levels.Critical != 1698 || risk.Levels.Low != 7253 {
		t.Errorf("risk payload = %+v", risk)
	}

	cwpp := seed.Categories[1]
	for _, widget := range cwpp.Widgets[:2] {
		if widget.Type != dashboard.TypeText || widget.Payload.Kind != dashboard.KindPlaceholder {
			t.Errorf("%s: expected a text placeholder, got %s/%s", widget.ID, widget.Type, widget.Payload.Kind)
		}
	}
	severity := cwpp.Widgets[2].Payload.Severity
	if severity == nil || severity.Total != 1470 || len(severity.Buckets) != 4 {
		t.Fatalf("severity payload = %+v", severity)
	}
	if severity.Buckets[0].Name != "red" || severity.Buckets[3].Name != "grey" {
		t.Errorf("bucket order = %+v", severity.Buckets)
	}

	for _, category := range seed.Categories {
		for _, widget := range category.Widgets {
			if !widget.CreatedAt.IsZero() {
				t.Errorf("%s: seeded widgets should have a zero CreatedAt", widget.ID)
			}
		}
	}
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	first := Default()
	first.Categories[0].Widgets[0].Name = "changed"
	if Default().Categories[0].Widgets[0].Name != "Cloud Accounts" {
		t.Error("Default should parse a fresh seed on every call")
	}
}

func TestParseJSONC(t *testing.T) {
	data := []byte(`{
		// one category, one empty chart
		"categories": [
			{"id": "ops", "name": "Operations", "widgets": [
				{"id": "uptime", "name": "Uptime", "type": "chart", "payload": {"kind": "empty"}},
			]},
		],
	}`)

	seed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(seed.Categories) != 1 || seed.Categories[0].Widgets[0].ID != "uptime" {
		t.Errorf("unexpected seed: %+v", seed)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	// A flat payload is the most likely authoring mistake.
	data := []byte(`{"categories": [{"id": "a", "name": "A", "widgets": [
		{"id": "w", "name": "W", "type": "chart", "payload": {"kind": "connections", "connected": 3}}
	]}]}`)

	if _, err := Parse(data); err == nil {
		t.Fatal("expected an error for an unknown payload field")
	}
}

func TestParseRejectsInvalidSeeds(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "no categories",
			data:    `{"categories": []}`,
			wantErr: "no categories",
		},
		{
			name: "duplicate category",
			data: `{"categories": [
				{"id": "a", "name": "A", "widgets": []},
				{"id": "a", "name": "B", "widgets": []}]}`,
			wantErr: `duplicate category id "a"`,
		},
		{
			name: "widget in two categories",
			data: `{"categories": [
				{"id": "a", "name": "A", "widgets": [{"id": "w", "name": "W", "type": "text"}]},
				{"id": "b", "name": "B", "widgets": [{"id": "w", "name": "W", "type": "text"}]}]}`,
			wantErr: `widget id "w" appears in both`,
		},
		{
			name: "placeholder on chart",
			data: `{"categories": [{"id": "a", "name": "A", "widgets": [
				{"id": "w", "name": "W", "type": "chart", "payload": {"kind": "placeholder", "placeholder": {}}}]}]}`,
			wantErr: "not allowed on widget type",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not mention %q", err, test.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	seed := &Seed{Categories: []dashboard.Category{
		{ID: "a", Name: "", Widgets: nil},
		{ID: "a", Name: "Again", Widgets: []dashboard.Widget{{ID: "w", Name: "", Type: dashboard.TypeText}}},
	}}

	err := seed.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if !errors.Is(err, dashboard.ErrInvalidWidget) {
		t.Errorf("expected ErrInvalidWidget in %v", err)
	}
	message := err.Error()
	for _, want := range []string{"missing name", "duplicate category id"} {
		if !strings.Contains(message, want) {
			t.Errorf("error %q does not mention %q", message, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "seed.jsonc")
	content := `{"categories": [{"id": "a", "name": "A", "widgets": []}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	seed, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if seed.Categories[0].ID != "a" {
		t.Errorf("unexpected seed: %+v", seed)
	}

	_, err = LoadFile(filepath.Join(directory, "missing.jsonc"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
