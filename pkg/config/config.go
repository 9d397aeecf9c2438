// Package config loads editor settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Layout holds the spacing of the auto-layout pass.
type Layout struct {
	HorizontalGap float64 `yaml:"horizontal_gap" json:"horizontal_gap" validate:"gte=0"`
	VerticalGap   float64 `yaml:"vertical_gap" json:"vertical_gap" validate:"gte=0"`
	OriginX       float64 `yaml:"origin_x" json:"origin_x"`
	OriginY       float64 `yaml:"origin_y" json:"origin_y"`
}

// Config is the declarative form of the editor options.
type Config struct {
	ReadOnly   bool `yaml:"read_only" json:"read_only"`
	StrictMode bool `yaml:"strict_mode" json:"strict_mode"`
	StrictDrag bool `yaml:"strict_drag" json:"strict_drag"`

	EnableNodeReorder         bool              `yaml:"enable_node_reorder" json:"enable_node_reorder"`
	ReorderableNodeTypes      []domain.NodeType `yaml:"reorderable_node_types" json:"reorderable_node_types" validate:"dive,nodetype"`
	PriorityEditableNodeTypes []domain.NodeType `yaml:"priority_editable_node_types" json:"priority_editable_node_types" validate:"dive,nodetype"`

	EnableUseCaseExecution         bool `yaml:"enable_use_case_execution" json:"enable_use_case_execution"`
	EnableReadOnlyUseCaseExecution bool `yaml:"enable_read_only_use_case_execution" json:"enable_read_only_use_case_execution"`

	// IgnoredActions extends the kinds applied without an undo entry.
	// UPDATE_NODE_SIZE is always ignored.
	IgnoredActions []domain.ActionType `yaml:"ignored_actions" json:"ignored_actions" validate:"dive,ignorable"`
	HistoryLimit   int                 `yaml:"history_limit" json:"history_limit" validate:"gte=0"`

	Layout Layout `yaml:"layout" json:"layout"`
}

// Default returns the settings a host gets without any configuration.
func Default() Config {
	return Config{
		ReadOnly:          true,
		StrictMode:        true,
		StrictDrag:        true,
		EnableNodeReorder: true,
		ReorderableNodeTypes: []domain.NodeType{
			domain.NodeTypeModule,
			domain.NodeTypeTestPoint,
			domain.NodeTypeUseCase,
			domain.NodeTypeStep,
		},
		PriorityEditableNodeTypes: []domain.NodeType{
			domain.NodeTypeModule,
			domain.NodeTypeTestPoint,
			domain.NodeTypeUseCase,
			domain.NodeTypeGeneral,
		},
		EnableUseCaseExecution:         true,
		EnableReadOnlyUseCaseExecution: true,
		IgnoredActions:                 []domain.ActionType{domain.ActionUpdateNodeSize},
		Layout: Layout{
			HorizontalGap: 80,
			VerticalGap:   20,
		},
	}
}

// CanReorder reports whether nodes of type t may be reordered.
func (c Config) CanReorder(t domain.NodeType) bool {
	return c.EnableNodeReorder && slices.Contains(c.ReorderableNodeTypes, t)
}

// CanEditPriority reports whether nodes of type t carry an editable priority.
func (c Config) CanEditPriority(t domain.NodeType) bool {
	return slices.Contains(c.PriorityEditableNodeTypes, t)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("nodetype", func(fl validator.FieldLevel) bool {
		return domain.NodeType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("ignorable", func(fl validator.FieldLevel) bool {
		return domain.ActionType(fl.Field().String()).Ignorable()
	})
	return v
}

// Validate checks the field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads path (YAML, or JSON when the extension is .json) on top of Default.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
