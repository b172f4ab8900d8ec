package config

import (
	"path/filepath"
	"strings"
	"testing"
)

const validRoadmapYAML = `
id: demo
title: Demo
sections:
  - id: a
    title: Section A
    steps:
      - {id: a1, title: First}
      - {id: a2, title: Second}
  - id: b
    title: Section B
    steps:
      - {id: b1, title: Third}
`

func TestParseRoadmapConfig(t *testing.T) {
	rm, err := ParseRoadmapConfig([]byte(validRoadmapYAML))
	if err != nil {
		t.Fatalf("ParseRoadmapConfig: %v", err)
	}
	if rm.StepCount() != 3 {
		t.Errorf("StepCount() = %d, want 3", rm.StepCount())
	}

	sec, ok := rm.SectionOf("b1")
	if !ok || sec.ID != "b" {
		t.Errorf("SectionOf(b1) = %v, %v; want section b", sec, ok)
	}
	if _, ok := rm.SectionOf("nope"); ok {
		t.Error("SectionOf(nope) should report false")
	}
}

func TestRoadmapConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		errContains string
	}{
		{"missing id", "sections: [{id: a, steps: [{id: s}]}]", "roadmap id is required"},
		{"no sections", "id: x", "has no sections"},
		{"empty section id", "id: x\nsections: [{steps: [{id: s}]}]", "empty id"},
		{"duplicate section", "id: x\nsections: [{id: a, steps: [{id: s1}]}, {id: a, steps: [{id: s2}]}]", "duplicate section id"},
		{"section without steps", "id: x\nsections: [{id: a}]", "has no steps"},
		{"empty step id", "id: x\nsections: [{id: a, steps: [{title: t}]}]", "empty id"},
		{"duplicate step across sections", "id: x\nsections: [{id: a, steps: [{id: s}]}, {id: b, steps: [{id: s}]}]", `duplicate step id "s"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoadmapConfig([]byte(tt.yamlContent))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestLoadBundledRoadmap(t *testing.T) {
	rm, err := LoadRoadmapConfig(filepath.Join("..", "..", "data", "roadmap.yaml"))
	if err != nil {
		t.Fatalf("LoadRoadmapConfig(data/roadmap.yaml): %v", err)
	}
	if rm.ID != "python-basics" {
		t.Errorf("ID = %q, want python-basics", rm.ID)
	}
	if len(rm.Sections) != 3 || rm.StepCount() != 10 {
		t.Errorf("sections/steps = %d/%d, want 3/10", len(rm.Sections), rm.StepCount())
	}
}
