// /internal/commands/registry.go
package commands

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

type Command struct {
	Sort        int
	Name        string
	Description string
	Category    string

	DCSlashHandler func(ctx *SlashContext)
	SlashOptions   []*discordgo.ApplicationCommandOption
}

var commandRegistry = map[string]*Command{}

func Register(cmd *Command) {
	commandRegistry[cmd.Name] = cmd
}

func Get(name string) (*Command, bool) {
	cmd, ok := commandRegistry[name]
	return cmd, ok
}

// All returns the registered commands in Sort order.
func All() []*Command {
	var list []*Command
	for _, cmd := range commandRegistry {
		list = append(list, cmd)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Sort < list[b].Sort })
	return list
}
