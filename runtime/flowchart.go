package runtime

import (
	"fmt"
	"strings"
)

// RenderFlowchart turns a PlainModel into a Mermaid flowchart: one node per
// actor, one edge per fan-out link, labeled with the UID's short name and
// the producer's output rate. No diagram library in the dependency pack
// covers this (the closest, gin-contrib/sse, is for streaming HTTP, not
// diagrams), so this stays a small stdlib string builder.
func RenderFlowchart(pm PlainModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "flowchart LR\n")
	for _, a := range pm.Actors {
		fmt.Fprintf(&b, "  %s[%q]\n", nodeID(a.ClientName), a.ClientName)
	}
	for _, a := range pm.Actors {
		for _, out := range a.Outputs {
			style := "-->"
			if out.Kind == PlainOutputBootstrap {
				style = "-.->"
			}
			fmt.Fprintf(&b, "  %s %s|%s @%d| %s\n",
				nodeID(a.ClientName), style, out.UID, a.OutputsRate, nodeID(out.Consumer))
		}
	}
	return b.String()
}

// nodeID sanitizes a display name into a Mermaid-safe node identifier.
func nodeID(name string) string {
	r := strings.NewReplacer(" ", "_", "-", "_", ".", "_")
	id := r.Replace(name)
	if id == "" {
		return "actor"
	}
	return id
}
