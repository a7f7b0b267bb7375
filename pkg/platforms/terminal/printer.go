package terminal

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented outline of root to w. Hidden widgets and their
// descendants are skipped.
func Print(w io.Writer, root *Widget) error {
	return printWidget(w, root, 0)
}

func printWidget(w io.Writer, widget *Widget, depth int) error {
	if widget == nil || widget.Hidden {
		return nil
	}
	line := describe(widget)
	if line != "" {
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), line); err != nil {
			return err
		}
		depth++
	}
	for _, child := range widget.Children {
		if err := printWidget(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

func describe(w *Widget) string {
	switch w.Kind {
	case "text":
		return w.Text
	case "button":
		if w.Disabled {
			return fmt.Sprintf("[ %s ] (disabled)", w.Text)
		}
		return fmt.Sprintf("[ %s ]", w.Text)
	case "image":
		label := w.Label
		if label == "" {
			label = "image"
		}
		if w.Image == "" {
			return fmt.Sprintf("<%s>", label)
		}
		return fmt.Sprintf("<%s: %s>", label, w.Image)
	case "empty":
		return ""
	default:
		if w.Label != "" {
			return w.Label
		}
		return ""
	}
}

// pressables returns the pressable widgets in tree order with their labels.
func pressables(root *Widget) ([]*Widget, []string) {
	var (
		widgets []*Widget
		labels  []string
	)
	var walk func(*Widget)
	walk = func(w *Widget) {
		if w == nil || w.Hidden {
			return
		}
		if w.Pressable() {
			widgets = append(widgets, w)
			labels = append(labels, pressLabel(w))
		}
		for _, child := range w.Children {
			walk(child)
		}
	}
	walk(root)
	return widgets, labels
}

func pressLabel(w *Widget) string {
	switch {
	case w.Text != "":
		return w.Text
	case w.Label != "":
		return w.Label
	}
	for _, child := range w.Children {
		if label := pressLabel(child); label != "" {
			return label
		}
	}
	return w.ID
}
