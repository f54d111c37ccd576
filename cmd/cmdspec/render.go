// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cmdspec/cmdspec/internal/config"
	"github.com/cmdspec/cmdspec/pkg/resolve"
)

// writeTree renders t to w in the requested format.
func writeTree(w io.Writer, t *resolve.Tree, format config.OutputFormat) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Snapshot())
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t.Snapshot()); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(t.Snapshot()); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	case config.OutputTree, "":
		for _, root := range t.Roots() {
			if _, err := fmt.Fprintln(w, commandTree(root)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, errs := format.IsValid()
		return errs[0]
	}
}

func commandTree(c *resolve.Command) *tree.Tree {
	label := TitleStyle.Render(c.Name())
	if !c.IsRoot() {
		label = CmdStyle.Render(c.Name())
	}
	if aliases := c.Aliases(); len(aliases) > 0 {
		label += " " + SubtitleStyle.Render("("+strings.Join(aliases, ", ")+")")
	}
	if summary := c.Description().Summary(); summary != "" {
		label += "  " + SubtitleStyle.Render(summary)
	}
	if c.Hidden() {
		label += " " + WarningStyle.Render("[hidden]")
	}

	t := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumeratorStyle)
	for _, o := range c.Options() {
		t.Child(optionLabel(o))
	}
	for _, a := range c.Arguments() {
		t.Child(argumentLabel(a))
	}
	for _, d := range c.Directives() {
		t.Child(CmdStyle.Render("["+d.Name()+"]") + " " + SubtitleStyle.Render(d.Shape().String()))
	}
	for _, child := range c.Children() {
		t.Child(commandTree(child))
	}
	return t
}

func optionLabel(o *resolve.Option) string {
	names := append([]string{o.Name()}, o.Aliases()...)
	details := []string{o.ValueShape().String(), o.Arity().String()}
	if o.Required() {
		details = append(details, "required")
	}
	if o.Default() != "" {
		details = append(details, "default "+o.Default())
	}
	if o.Global() {
		details = append(details, "global")
	}
	if o.Propagated() {
		details = append(details, "from "+o.Origin().Name())
	}
	return CmdStyle.Render(strings.Join(names, ", ")) + " " + SubtitleStyle.Render(strings.Join(details, ", "))
}

func argumentLabel(a *resolve.Argument) string {
	details := []string{a.ValueShape().String(), a.Arity().String()}
	if a.Required() {
		details = append(details, "required")
	}
	if a.Default() != "" {
		details = append(details, "default "+a.Default())
	}
	return CmdStyle.Render("<"+a.Name()+">") + " " + SubtitleStyle.Render(strings.Join(details, ", "))
}
