package services

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/finditfaster/internal/orchestrator"
)

// HelpMarkdown is the key reference shown by "?".
const HelpMarkdown = `# FindItFaster

| Key | Action |
| --- | --- |
| up/down, k/j | move between commands |
| enter | run the selected command |
| / or tab | edit the query handed to fzf as the initial selection |
| w | set workspace roots |
| r | reload settings |
| ? | toggle this help |
| q, ctrl+c | quit |

While a search is on screen, press **ctrl+]** to return here without ending it.
Running any command while it is detached brings it back.
`

// LocationsMarkdown formats the current search locations as markdown.
func LocationsMarkdown(v orchestrator.View) string {
	var b strings.Builder
	b.WriteString("## Search locations\n\n")
	if len(v.Locations) == 0 {
		b.WriteString("_No paths are searched._\n")
	}
	for _, l := range v.Locations {
		fmt.Fprintf(&b, "- `%s` (%s)\n", l.Path, l.Origins)
	}
	if len(v.WorkspaceRoots) > 0 {
		b.WriteString("\n## Workspace roots\n\n")
		for _, r := range v.WorkspaceRoots {
			fmt.Fprintf(&b, "- `%s`\n", r)
		}
	}
	return b.String()
}
