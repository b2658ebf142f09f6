package services

import (
	"sort"
	"strings"
)

// Style is the visual appearance of one preview class. Only colors live
// here; layout stays in the structural stylesheet.
type Style struct {
	Background  string
	Color       string
	BorderColor string
}

// StyleSource maps preview class names to their visual styles. The live
// preview emits it as CSS classes; the export path inlines it onto each
// node so the rasterized clone carries no class dependencies.
type StyleSource map[string]Style

// DefaultStyles is the stock document palette.
func DefaultStyles() StyleSource {
	return StyleSource{
		"page":           {Background: "#ffffff", Color: "#1F2937"},
		"info-box":       {Background: "#DBEAFE"},
		"info-extra":     {BorderColor: "#93C5FD"},
		"info-label":     {Color: "#2563EB"},
		"parties-box":    {BorderColor: "#E5E7EB", Background: "#ffffff"},
		"party-title":    {Color: "#2563EB"},
		"body-text":      {Color: "#4B5563"},
		"muted":          {Color: "#6B7280"},
		"table-head":     {Background: "#2563EB", Color: "#ffffff"},
		"head-cell":      {BorderColor: "#1D4ED8", Color: "#ffffff"},
		"cell":           {BorderColor: "#E5E7EB"},
		"row-even":       {Background: "#F9FAFB"},
		"row-odd":        {Background: "#ffffff"},
		"totals-row":     {BorderColor: "#E5E7EB"},
		"totals-label":   {Color: "#4B5563"},
		"discount":       {Color: "#DC2626"},
		"grand-row":      {Background: "#DBEAFE", Color: "#1D4ED8"},
		"notes-box":      {Background: "#F9FAFB", BorderColor: "#E5E7EB"},
		"notes-title":    {Color: "#2563EB"},
		"footer":         {BorderColor: "#E5E7EB", Color: "#6B7280"},
		"footer-strong":  {Color: "#2563EB"},
		"signatures":     {Color: "#4B5563"},
		"signature-line": {BorderColor: "#9CA3AF"},
	}
}

// CSS emits the style source as class rules, in sorted class order.
func (s StyleSource) CSS() string {
	classes := make([]string, 0, len(s))
	for class := range s {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var b strings.Builder
	for _, class := range classes {
		style := s[class]
		b.WriteString("        ." + class + " {")
		if style.Background != "" {
			b.WriteString(" background-color: " + style.Background + ";")
		}
		if style.Color != "" {
			b.WriteString(" color: " + style.Color + ";")
		}
		if style.BorderColor != "" {
			b.WriteString(" border-color: " + style.BorderColor + ";")
		}
		b.WriteString(" }\n")
	}
	return b.String()
}

// FlattenStyles returns a deep copy of the tree with every class's
// colors resolved to inline styles. The input tree is never mutated, so
// the live preview and the export clone stay independent. Later classes
// on a node win when several set the same property.
func FlattenStyles(n *Node, styles StyleSource) *Node {
	clone := &Node{
		Tag:     n.Tag,
		Class:   n.Class,
		Text:    n.Text,
		RawHTML: n.RawHTML,
	}
	if len(n.Attrs) > 0 {
		clone.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			clone.Attrs[k] = v
		}
	}
	if len(n.Style) > 0 {
		clone.Style = make(map[string]string, len(n.Style))
		for k, v := range n.Style {
			clone.Style[k] = v
		}
	}

	for _, class := range strings.Fields(n.Class) {
		style, ok := styles[class]
		if !ok {
			continue
		}
		if clone.Style == nil {
			clone.Style = make(map[string]string, 3)
		}
		if style.Background != "" {
			clone.Style["background-color"] = style.Background
		}
		if style.Color != "" {
			clone.Style["color"] = style.Color
		}
		if style.BorderColor != "" {
			clone.Style["border-color"] = style.BorderColor
		}
	}

	for _, child := range n.Children {
		clone.Children = append(clone.Children, FlattenStyles(child, styles))
	}
	return clone
}

// ClonePage flattens a preview tree and pins the clone to fixed A4
// capture geometry: full page width, a minimum page height, white
// background, and an off-screen position so a live DOM never shows it.
func ClonePage(n *Node, styles StyleSource) *Node {
	clone := FlattenStyles(n, styles)
	if clone.Style == nil {
		clone.Style = make(map[string]string, 8)
	}
	clone.Style["width"] = "210mm"
	clone.Style["min-height"] = "297mm"
	clone.Style["padding"] = "12mm"
	clone.Style["box-sizing"] = "border-box"
	clone.Style["background-color"] = "#ffffff"
	clone.Style["position"] = "absolute"
	clone.Style["left"] = "-9999px"
	clone.Style["top"] = "0"
	return clone
}
