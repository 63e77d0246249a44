// /internal/commands/help.go
package commands

import (
	"fmt"
	"strings"
)

func init() {
	Register(&Command{
		Sort:        101,
		Name:        "papohelp",
		Description: "Show a list of available commands",
		Category:    "Information",

		DCSlashHandler: helpSlashHandler,
	})
}

func helpSlashHandler(ctx *SlashContext) {
	respondEphemeral(ctx.Session, ctx.InteractionCreate, buildHelpMessage())
}

// buildHelpMessage groups commands by category. All() is already in Sort
// order, so categories appear in the order of their first command.
func buildHelpMessage() string {
	var (
		order []string
		byCat = map[string][]*Command{}
	)
	for _, cmd := range All() {
		if _, ok := byCat[cmd.Category]; !ok {
			order = append(order, cmd.Category)
		}
		byCat[cmd.Category] = append(byCat[cmd.Category], cmd)
	}

	var sb strings.Builder
	sb.WriteString("📖 **Available Commands**\n")
	for _, cat := range order {
		sb.WriteString(fmt.Sprintf("\n**%s**\n", cat))
		for _, cmd := range byCat[cat] {
			sb.WriteString(fmt.Sprintf("`/%s` - %s\n", cmd.Name, cmd.Description))
		}
	}
	return sb.String()
}
