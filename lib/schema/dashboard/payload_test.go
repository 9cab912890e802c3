// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPayloadValidateAllowedKinds(t *testing.T) {
	tests := []struct {
		name       string
		widgetType WidgetType
		payload    Payload
		wantErr    bool
	}{
		{"empty on chart", TypeChart, EmptyPayload(), false},
		{"empty on text", TypeText, EmptyPayload(), false},
		{"zero payload is empty", TypeText, Payload{}, false},
		{"connections on chart", TypeChart, ConnectionsPayload(3, 2), false},
		{"connections on text", TypeText, ConnectionsPayload(3, 2), true},
		{"risk on chart", TypeChart, RiskPayload(10, RiskLevels{Critical: 1}), false},
		{"severity on chart", TypeChart, SeverityPayload(1, SeverityBucket{Name: "red", Count: 1}), false},
		{"placeholder on text", TypeText, PlaceholderPayload(""), false},
		{"placeholder on chart", TypeChart, PlaceholderPayload(""), true},
		{"empty on custom type", WidgetType("gauge"), EmptyPayload(), false},
		{"data on custom type", WidgetType("gauge"), ConnectionsPayload(1, 1), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.payload.Validate(test.widgetType)
			if test.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !test.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("error should wrap ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestPayloadValidateShape(t *testing.T) {
	mixed := ConnectionsPayload(1, 1)
	mixed.Risk = &RiskSummary{Total: 1}
	if err := mixed.Validate(TypeChart); err == nil {
		t.Error("payload with two populated fields should be rejected")
	}

	missing := Payload{Kind: KindRisk}
	if err := missing.Validate(TypeChart); err == nil {
		t.Error("risk payload without risk data should be rejected")
	}

	negative := ConnectionsPayload(-1, 2)
	if err := negative.Validate(TypeChart); err == nil {
		t.Error("negative connection count should be rejected")
	}

	duplicate := SeverityPayload(2,
		SeverityBucket{Name: "red", Count: 1},
		SeverityBucket{Name: "red", Count: 1},
	)
	if err := duplicate.Validate(TypeChart); err == nil {
		t.Error("duplicate severity bucket should be rejected")
	}

	unknown := Payload{Kind: "sparkline"}
	if err := unknown.Validate(TypeChart); err == nil {
		t.Error("unknown payload kind should be rejected")
	}
}

func TestSeverityPayloadCopiesBuckets(t *testing.T) {
	buckets := []SeverityBucket{{Name: "red", Count: 20}, {Name: "grey", Count: 10}}
	payload := SeverityPayload(30, buckets...)
	buckets[0].Count = 99

	if payload.Severity.Buckets[0].Count != 20 {
		t.Errorf("payload should not alias the caller's slice, got count %d", payload.Severity.Buckets[0].Count)
	}
	if payload.Severity.Sum() != 30 {
		t.Errorf("expected sum 30, got %d", payload.Severity.Sum())
	}
}

func TestPayloadJSONShape(t *testing.T) {
	data := []byte(`{"kind":"risk","risk":{"total":7253,"risk_levels":{"critical":1698,"high":68,"medium":36,"low":7253}}}`)

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := payload.Validate(TypeChart); err != nil {
		t.Fatalf("decoded payload should validate: %v", err)
	}
	if payload.Risk.Total != 7253 || payload.Risk.Levels.Critical != 1698 {
		t.Errorf("unexpected decoded risk summary: %+v", *payload.Risk)
	}
}

func TestCategoryValidate(t *testing.T) {
	category := Category{
		ID:   "cwpp",
		Name: "CWPP Dashboard",
		Widgets: []Widget{
			{ID: "w1", Name: "Workload Alerts", Type: TypeText, Payload: PlaceholderPayload("")},
			{ID: "w1", Name: "Duplicate", Type: TypeText, Payload: EmptyPayload()},
		},
	}
	err := category.Validate()
	if err == nil {
		t.Fatal("duplicate widget ids should fail validation")
	}
	if !errors.Is(err, ErrInvalidWidget) {
		t.Errorf("expected ErrInvalidWidget, got %v", err)
	}

	category.Widgets[1].ID = "w2"
	if err := category.Validate(); err != nil {
		t.Errorf("unexpected error after fixing ids: %v", err)
	}

	if index := category.IndexOf("w2"); index != 1 {
		t.Errorf("IndexOf(w2) = %d, want 1", index)
	}
	if index := category.IndexOf("missing"); index != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", index)
	}
}

func TestWidgetValidateRequiresName(t *testing.T) {
	widget := Widget{ID: "w1", Type: TypeChart}
	if err := widget.Validate(); !errors.Is(err, ErrInvalidWidget) {
		t.Errorf("expected ErrInvalidWidget for missing name, got %v", err)
	}
}
