package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoadmapConfig 学习路线图定义
//
// 配置文件位置: data/roadmap.yaml
// 路线图由若干章节组成，每个章节包含若干步骤；章节的全部步骤完成即为章节完成。
type RoadmapConfig struct {
	ID       string          `yaml:"id"`
	Title    string          `yaml:"title"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig 章节定义
type SectionConfig struct {
	ID    string       `yaml:"id"`
	Title string       `yaml:"title"`
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig 步骤定义
type StepConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// LoadRoadmapConfig 从文件加载路线图
func LoadRoadmapConfig(path string) (*RoadmapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roadmap config: %w", err)
	}
	return ParseRoadmapConfig(data)
}

// ParseRoadmapConfig 解析 YAML 格式的路线图
func ParseRoadmapConfig(data []byte) (*RoadmapConfig, error) {
	var cfg RoadmapConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse roadmap config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roadmap config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证路线图：ID 非空，步骤 ID 全局唯一，章节不能为空
func (c *RoadmapConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("roadmap id is required")
	}
	if len(c.Sections) == 0 {
		return fmt.Errorf("roadmap %q has no sections", c.ID)
	}

	sectionIDs := make(map[string]bool)
	stepIDs := make(map[string]string)
	for i, section := range c.Sections {
		if section.ID == "" {
			return fmt.Errorf("section #%d has empty id", i)
		}
		if sectionIDs[section.ID] {
			return fmt.Errorf("duplicate section id %q", section.ID)
		}
		sectionIDs[section.ID] = true

		if len(section.Steps) == 0 {
			return fmt.Errorf("section %q has no steps", section.ID)
		}
		for j, step := range section.Steps {
			if step.ID == "" {
				return fmt.Errorf("step #%d in section %q has empty id", j, section.ID)
			}
			if owner, exists := stepIDs[step.ID]; exists {
				return fmt.Errorf("duplicate step id %q (sections %q and %q)", step.ID, owner, section.ID)
			}
			stepIDs[step.ID] = section.ID
		}
	}
	return nil
}

// StepCount 返回步骤总数
func (c *RoadmapConfig) StepCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Steps)
	}
	return n
}

// SectionOf 返回步骤所属章节
func (c *RoadmapConfig) SectionOf(stepID string) (*SectionConfig, bool) {
	for i := range c.Sections {
		for _, step := range c.Sections[i].Steps {
			if step.ID == stepID {
				return &c.Sections[i], true
			}
		}
	}
	return nil, false
}
