package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ProgressData 单个路线图的完成进度
type ProgressData struct {
	RoadmapID string   `yaml:"roadmapId"`
	Completed []string `yaml:"completed"` // 已完成步骤ID（排序后保存）
}

// ProgressManager 路线图进度管理器
//
// 职责：
//   - 记录哪些步骤已完成
//   - 通过 gdata 持久化（每个路线图一个属性）
//
// gdataManager 为 nil 时只在内存中保存进度。
type ProgressManager struct {
	gdataManager *gdata.Manager
	roadmapID    string
	completed    map[string]bool
}

const progressObject = "progress"

// NewProgressManager 创建进度管理器并加载已保存的进度
func NewProgressManager(gdataManager *gdata.Manager, roadmapID string) (*ProgressManager, error) {
	if roadmapID == "" {
		return nil, fmt.Errorf("roadmap id is empty")
	}
	pm := &ProgressManager{
		gdataManager: gdataManager,
		roadmapID:    roadmapID,
		completed:    make(map[string]bool),
	}

	if err := pm.Load(); err != nil {
		log.Printf("[Progress] Warning: Failed to load progress for %s: %v (starting fresh)", roadmapID, err)
	}
	return pm, nil
}

// Load 从 gdata 读取进度；数据不存在时为空进度
func (pm *ProgressManager) Load() error {
	pm.completed = make(map[string]bool)
	if pm.gdataManager == nil || !pm.gdataManager.ObjectPropExists(progressObject, pm.roadmapID) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, pm.roadmapID)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var pd ProgressData
	if err := yaml.Unmarshal(data, &pd); err != nil {
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	for _, id := range pd.Completed {
		pm.completed[id] = true
	}

	log.Printf("[Progress] Loaded %d completed steps for %s", len(pm.completed), pm.roadmapID)
	return nil
}

// Save 写入 gdata；降级模式下不做任何事
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&ProgressData{
		RoadmapID: pm.roadmapID,
		Completed: pm.CompletedSteps(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(progressObject, pm.roadmapID, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// IsCompleted 步骤是否已完成
func (pm *ProgressManager) IsCompleted(stepID string) bool {
	return pm.completed[stepID]
}

// SetCompleted 设置步骤完成状态，返回状态是否发生变化
func (pm *ProgressManager) SetCompleted(stepID string, done bool) bool {
	if pm.completed[stepID] == done {
		return false
	}
	if done {
		pm.completed[stepID] = true
	} else {
		delete(pm.completed, stepID)
	}
	return true
}

// Toggle 切换步骤状态，返回切换后的状态
func (pm *ProgressManager) Toggle(stepID string) bool {
	done := !pm.completed[stepID]
	pm.SetCompleted(stepID, done)
	return done
}

// CompletedSteps 返回排序后的已完成步骤ID
func (pm *ProgressManager) CompletedSteps() []string {
	ids := make([]string, 0, len(pm.completed))
	for id := range pm.completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CompletedCount 已完成步骤数
func (pm *ProgressManager) CompletedCount() int {
	return len(pm.completed)
}

// AllCompleted 给定步骤是否全部完成（空列表视为未完成）
func (pm *ProgressManager) AllCompleted(stepIDs []string) bool {
	if len(stepIDs) == 0 {
		return false
	}
	for _, id := range stepIDs {
		if !pm.completed[id] {
			return false
		}
	}
	return true
}

// Reset 清空进度（仅内存，需调用 Save 持久化）
func (pm *ProgressManager) Reset() {
	pm.completed = make(map[string]bool)
}

// RoadmapID 返回路线图ID
func (pm *ProgressManager) RoadmapID() string {
	return pm.roadmapID
}
