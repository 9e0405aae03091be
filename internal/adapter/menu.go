package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ollamakit/internal/registry"
)

const menuRule = "=================================================="

// Menu is the line-oriented model management menu.
type Menu struct {
	reg Registry
	in  *bufio.Scanner
	out io.Writer
}

func NewMenu(reg Registry, in io.Reader, out io.Writer) *Menu {
	return &Menu{reg: reg, in: bufio.NewScanner(in), out: out}
}

// Run shows the menu until the user exits, input ends or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printf("\n%s\nInteractive Model Management\n%s\n", menuRule, menuRule)
		m.printf("1. List models\n2. Show model details\n3. Check if model is installed\n4. Pull a model\n5. Delete a model\n6. Exit\n%s\n", menuRule)

		choice, ok := m.prompt("Enter your choice (1-6): ")
		if !ok {
			m.printf("\nGoodbye!\n")
			return m.in.Err()
		}
		switch choice {
		case "1":
			m.list(ctx)
		case "2":
			if name, ok := m.name("Enter model name: "); ok {
				m.printf("\n%s\n", m.reg.ShowModel(ctx, name))
			}
		case "3":
			if name, ok := m.name("Enter model name: "); ok {
				status := "❌ Not installed"
				if m.reg.IsModelInstalled(ctx, name) {
					status = "✅ Installed"
				}
				m.printf("\n%s: %s\n", name, status)
			}
		case "4":
			m.pull(ctx)
		case "5":
			m.delete(ctx)
		case "6":
			m.printf("Goodbye!\n")
			return nil
		default:
			m.printf("Invalid choice. Please enter 1-6.\n")
		}
	}
}

func (m *Menu) list(ctx context.Context) {
	models, err := m.reg.ListModels(ctx).Unwrap()
	switch {
	case err != nil:
		m.printf("Error: %v\n", err)
	case len(models) == 0:
		m.printf("No models found.\n")
	default:
		m.printf("\nFound %d models:\n", len(models))
		for i, md := range models {
			m.printf("%d. %s (%s)\n", i+1, md.Name, registry.FormatSize(md.Size))
		}
	}
}

func (m *Menu) pull(ctx context.Context) {
	name, ok := m.name("Enter model name to pull: ")
	if !ok || !m.confirm(fmt.Sprintf("Are you sure you want to pull %s? (y/N): ", name)) {
		return
	}
	m.printf("Pulling %s... This may take a while.\n", name)
	if err := m.reg.PullModel(ctx, name).Err(); err != nil {
		m.printf("❌ Error: %v\n", err)
		return
	}
	m.printf("✅ Model pulled successfully!\n")
}

func (m *Menu) delete(ctx context.Context) {
	models, ok := m.reg.ListModels(ctx).Value()
	if !ok || len(models) == 0 {
		m.printf("No models available to delete.\n")
		return
	}
	m.printf("\nCurrent models:\n")
	for i, md := range models {
		m.printf("%d. %s\n", i+1, md.Name)
	}
	name, ok := m.name("Enter model name to delete: ")
	if !ok || !m.confirm(fmt.Sprintf("Are you sure you want to delete %s? (y/N): ", name)) {
		return
	}
	if err := m.reg.DeleteModel(ctx, name).Err(); err != nil {
		m.printf("❌ Error: %v\n", err)
		return
	}
	m.printf("✅ Model deleted successfully!\n")
}

// name reads a model name, complaining when it is blank.
func (m *Menu) name(label string) (string, bool) {
	name, ok := m.prompt(label)
	if ok && name == "" {
		m.printf("Please enter a model name.\n")
		return "", false
	}
	return name, ok
}

func (m *Menu) confirm(label string) bool {
	ans, _ := m.prompt(label)
	if strings.ToLower(ans) == "y" {
		return true
	}
	m.printf("Operation cancelled.\n")
	return false
}

func (m *Menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}
