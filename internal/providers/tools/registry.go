package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sagebot/internal/core"
)

// Manager is the tool catalogue: a tagged registry of named callables.
// Registration order is preserved so iteration is deterministic.
type Manager struct {
	tools map[string]core.Tool
	order []string
}

func NewManager() *Manager {
	m := &Manager{
		tools: make(map[string]core.Tool),
	}
	m.Register(&Weather{})
	m.Register(&Calculator{})
	m.Register(&Clock{})
	m.Register(&WebSearch{})
	return m
}

func (m *Manager) Register(tool core.Tool) {
	name := tool.Name()
	if _, exists := m.tools[name]; !exists {
		m.order = append(m.order, name)
	}
	m.tools[name] = tool
}

func (m *Manager) List() []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

func (m *Manager) Get(name string) (core.Tool, bool) {
	tool, ok := m.tools[name]
	return tool, ok
}

func (m *Manager) Describe(name string) string {
	tool, ok := m.tools[name]
	if !ok {
		return ""
	}
	desc := fmt.Sprintf("%s: %s", tool.Name(), tool.Description())
	if params := tool.Parameters(); len(params) > 0 {
		parts := make([]string, 0, len(params))
		for pname, spec := range params {
			parts = append(parts, fmt.Sprintf("%s: %s", pname, spec.Type))
		}
		desc += " | Parameters: " + strings.Join(parts, ", ")
	}
	return desc
}

func (m *Manager) Descriptions() string {
	descs := make([]string, 0, len(m.order))
	for _, name := range m.order {
		descs = append(descs, m.Describe(name))
	}
	return strings.Join(descs, "\n")
}

func (m *Manager) Execute(ctx context.Context, name string, params map[string]any) (map[string]any, error) {
	tool, ok := m.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool %q not found", name)
	}
	result, err := tool.Execute(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}
	return result, nil
}
