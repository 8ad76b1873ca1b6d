// mcp/registry.go
package mcp

import (
	"context"
	"fmt"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// ToolContext carries the caller's claims and the tool's static config
// into a handler. Handlers get nothing else.
type ToolContext struct {
	Caller model.Claims
	Config map[string]interface{}
}

// ToolHandler is the single capability interface every concrete tool
// adapts to, regardless of its natural argument shape.
type ToolHandler interface {
	Handle(ctx context.Context, input map[string]interface{}, tc ToolContext) (map[string]interface{}, error)
}

// HandlerFunc adapts a plain function to ToolHandler.
type HandlerFunc func(ctx context.Context, input map[string]interface{}, tc ToolContext) (map[string]interface{}, error)

func (f HandlerFunc) Handle(ctx context.Context, input map[string]interface{}, tc ToolContext) (map[string]interface{}, error) {
	return f(ctx, input, tc)
}

// Tool is one registered callable with its requester-role gate.
type Tool struct {
	Name                  string
	Handler               ToolHandler
	AllowedRequesterRoles []string
	Config                map[string]interface{}
}

// Registry holds the tool set. Registration happens once at startup; the
// set is static for the process lifetime.
type Registry struct {
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %s has no handler", tool.Name)
	}
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s already registered", tool.Name)
	}
	r.tools[tool.Name] = tool
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}
