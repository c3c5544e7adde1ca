package command

import (
	"sort"
)

// Node represents a node in the command tree.
type Node struct {
	Cmd Command
}

// CommandTree manages all commands by name and alias.
type CommandTree struct {
	nodes map[string]*Node
}

// NewTree creates a new empty command tree.
func NewTree() *CommandTree {
	return &CommandTree{nodes: make(map[string]*Node)}
}

// Register inserts a command under its name and every alias.
func (t *CommandTree) Register(cmd Command) {
	node := &Node{Cmd: cmd}
	for _, n := range append([]string{cmd.Name()}, cmd.Aliases()...) {
		t.nodes[n] = node
	}
}

// Get returns a command by name or alias.
func (t *CommandTree) Get(name string) (Command, bool) {
	node, ok := t.nodes[name]
	if !ok {
		return nil, false
	}
	return node.Cmd, true
}

// Commands returns each registered command once, ordered by name.
func (t *CommandTree) Commands() []Command {
	seen := make(map[*Node]struct{})
	var cmds []Command
	for _, node := range t.nodes {
		if _, ok := seen[node]; ok {
			continue
		}
		seen[node] = struct{}{}
		cmds = append(cmds, node.Cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}
