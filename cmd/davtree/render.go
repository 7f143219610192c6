package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/davtree/internal/pathing"
	"github.com/desertwitch/davtree/internal/schema"
)

//nolint:gochecknoglobals
var (
	// containerStyle defines the style for the kind label of a container.
	containerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			Width(kindLabelWidth)

	// leafStyle defines the style for the kind label of a leaf.
	leafStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Width(kindLabelWidth)

	// pathStyle defines the style for a virtual path.
	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

const kindLabelWidth = 10

// renderNode returns the one-line rendition of a resolved [schema.Node]
// under its virtual path.
func renderNode(virtualPath string, node schema.Node) string {
	style := leafStyle
	if node.IsContainer() {
		style = containerStyle
	}

	return style.Render(node.Kind.String()) + pathStyle.Render(pathing.DisplayPath(virtualPath))
}
