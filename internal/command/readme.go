package command

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// RenderReadme executes tpl with a CommandSections value holding the usage
// and help of every registered command.
func RenderReadme(w io.Writer, tpl string) error {
	t, err := template.New("readme").Parse(tpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var sections strings.Builder
	for _, cmd := range AllCommands() {
		fmt.Fprintf(&sections, "### %s\n```\ngitlet %s\n\n%s\n```\n\n", cmd.Name(), cmd.Usage(), cmd.Help())
	}

	data := map[string]string{
		"CommandSections": sections.String(),
	}
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}
