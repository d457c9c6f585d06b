// Package ops classifies CLI commands into groups so help output can present
// package operations separately from support commands.
package ops

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
)

// Group is the operational classification of a command.
type Group string

const (
	// GroupPackage covers commands that query or mutate the plugin set.
	GroupPackage Group = "package"
	// GroupSupport covers version, config scaffolding, and similar helpers.
	GroupSupport Group = "support"
)

// Registration is one classified command.
type Registration struct {
	Name        string
	Group       Group
	Command     *cobra.Command
	Description string
}

// Registry indexes registered commands by name and group.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Registration
	byGroup map[Group][]*Registration
}

var globalRegistry = &Registry{
	byName:  make(map[string]*Registration),
	byGroup: make(map[Group][]*Registration),
}

// GetRegistry returns the global command registry.
func GetRegistry() *Registry {
	return globalRegistry
}

// Register classifies a command. Name collisions are an error.
func Register(name string, group Group, cmd *cobra.Command, description string) error {
	return globalRegistry.Register(name, group, cmd, description)
}

// Register adds a command to the registry.
func (r *Registry) Register(name string, group Group, cmd *cobra.Command, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	reg := &Registration{Name: name, Group: group, Command: cmd, Description: description}
	r.byName[name] = reg
	r.byGroup[group] = append(r.byGroup[group], reg)
	return nil
}

// ByGroup returns the commands in a group, sorted by name.
func (r *Registry) ByGroup(group Group) []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Registration, len(r.byGroup[group]))
	copy(out, r.byGroup[group])
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns a registered command by name.
func (r *Registry) Lookup(name string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byName[name]
	return reg, ok
}
