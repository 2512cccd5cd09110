package main

import (
	"fmt"
	"strings"

	"qgrover/synth"
)

// menuItem represents a single circuit choice in the picker.
type menuItem struct {
	builder synth.Builder
	example string
}

// circuitMenu lists the builders with a sample argument string each.
var circuitMenu = []menuItem{
	{builder: mustLookup("mcx"), example: "4"},
	{builder: mustLookup("oracle"), example: "5,4"},
	{builder: mustLookup("diffuser"), example: "3"},
}

func mustLookup(name string) synth.Builder {
	b, ok := synth.Lookup(name)
	if !ok {
		panic("unknown builder " + name)
	}
	return b
}

// argHint formats the argument names of a builder, optional ones bracketed.
func argHint(b synth.Builder) string {
	parts := make([]string, len(b.Args))
	for i, a := range b.Args {
		if i < b.MinArgs {
			parts[i] = a
		} else {
			parts[i] = "[" + a + "]"
		}
	}
	return strings.Join(parts, ",")
}

// renderMenu renders the floating circuit-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Pick Circuit"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	for i, item := range circuitMenu {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-10s", item.builder.Name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-10s", item.builder.Name)))
		}
		sb.WriteString(dimStyle.Render(fmt.Sprintf("(%s) %s", argHint(item.builder), item.builder.Usage)))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}

// renderParamInput renders the argument prompt for the pending builder.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	b := circuitMenu[m.menuItem].builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s(%s)", b.Name, argHint(b))))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(" > %s", activeGateStyle.Render(m.paramInput+"█")))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" e.g. %s   ⏎ Build  Esc ✕", circuitMenu[m.menuItem].example)))
	return menuBorderStyle.Render(sb.String())
}
