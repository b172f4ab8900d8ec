package game

import (
	"reflect"
	"testing"
)

// TestProgressToggle 测试步骤切换
func TestProgressToggle(t *testing.T) {
	pm, err := NewProgressManager(nil, "python-basics")
	if err != nil {
		t.Fatalf("NewProgressManager: %v", err)
	}

	if !pm.Toggle("install") {
		t.Error("first Toggle should complete the step")
	}
	if !pm.IsCompleted("install") {
		t.Error("install should be completed")
	}
	if pm.Toggle("install") {
		t.Error("second Toggle should uncomplete the step")
	}
	if pm.CompletedCount() != 0 {
		t.Errorf("CompletedCount = %d, want 0", pm.CompletedCount())
	}

	if !pm.SetCompleted("a", true) {
		t.Error("SetCompleted(a, true) should report a change")
	}
	if pm.SetCompleted("a", true) {
		t.Error("repeated SetCompleted should report no change")
	}
}

// TestProgressAllCompleted 测试章节完成判断
func TestProgressAllCompleted(t *testing.T) {
	pm, _ := NewProgressManager(nil, "r")

	tests := []struct {
		name  string
		done  []string
		steps []string
		want  bool
	}{
		{"空章节", nil, nil, false},
		{"部分完成", []string{"a"}, []string{"a", "b"}, false},
		{"全部完成", []string{"a", "b"}, []string{"a", "b"}, true},
		{"多余步骤不影响", []string{"a", "b", "c"}, []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm.Reset()
			for _, id := range tt.done {
				pm.SetCompleted(id, true)
			}
			if got := pm.AllCompleted(tt.steps); got != tt.want {
				t.Errorf("AllCompleted(%v) = %v, want %v", tt.steps, got, tt.want)
			}
		})
	}
}

// TestProgressPersistence 测试 gdata 持久化往返
func TestProgressPersistence(t *testing.T) {
	gdataManager := openTestGdata(t, "test_fx_progress")

	pm1, err := NewProgressManager(gdataManager, "python-basics")
	if err != nil {
		t.Fatalf("NewProgressManager: %v", err)
	}
	pm1.SetCompleted("variables", true)
	pm1.SetCompleted("install", true)
	if err := pm1.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pm2, _ := NewProgressManager(gdataManager, "python-basics")
	want := []string{"install", "variables"}
	if got := pm2.CompletedSteps(); !reflect.DeepEqual(got, want) {
		t.Errorf("CompletedSteps = %v, want %v", got, want)
	}

	// 不同路线图互不影响
	other, _ := NewProgressManager(gdataManager, "go-basics")
	if other.CompletedCount() != 0 {
		t.Errorf("other roadmap CompletedCount = %d, want 0", other.CompletedCount())
	}
}

// TestNewProgressManagerEmptyID 测试空路线图ID
func TestNewProgressManagerEmptyID(t *testing.T) {
	if _, err := NewProgressManager(nil, ""); err == nil {
		t.Error("expected error for empty roadmap id")
	}
}
