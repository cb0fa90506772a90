package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"ptc/internal/config"
	"ptc/internal/domain"
	"ptc/internal/marker"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintWarnings prints non-fatal collection warnings.
func (f *Formatter) PrintWarnings(warnings []string) {
	for _, w := range warnings {
		color.Yellow("warning: %s", w)
	}
}

// PrintPlan prints the execution plan as a tree of files and their
// selected tests. With filesOnly, only the files are listed.
func (f *Formatter) PrintPlan(plan *domain.ExecutionPlan, filesOnly bool) {
	files := plan.Files()

	if filesOnly {
		color.Green("Selected %d test(s) in %d file(s):\n", len(plan.Entries), len(files))
		for i, file := range files {
			if i == len(files)-1 {
				color.Cyan("└── %s", file)
			} else {
				color.Cyan("├── %s", file)
			}
		}
		return
	}

	byFile := make(map[string][]domain.PlanEntry)
	for _, e := range plan.Entries {
		byFile[e.File] = append(byFile[e.File], e)
	}

	color.Green("Selected %d test(s) in %d file(s):\n", len(plan.Entries), len(files))
	for i, file := range files {
		isLastFile := i == len(files)-1
		if isLastFile {
			color.Cyan("└── %s", file)
		} else {
			color.Cyan("├── %s", file)
		}

		entries := byFile[file]
		for j, entry := range entries {
			isLastEntry := j == len(entries)-1

			var prefix string
			if isLastFile {
				if isLastEntry {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastEntry {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			tags := ""
			if len(entry.Markers) > 0 {
				tags = " " + color.MagentaString("[%s]", strings.Join(entry.Markers, ", "))
			}
			fmt.Printf("%s%s%s\n", prefix, color.YellowString(entry.Name), tags)
		}

		if i < len(files)-1 {
			fmt.Println()
		}
	}
}

// PrintPlanJSON writes the plan to stdout as indented JSON for
// external execution backends.
func (f *Formatter) PrintPlanJSON(plan *domain.ExecutionPlan) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// PrintMarkers prints the declared marker set with descriptions.
func (f *Formatter) PrintMarkers(set *marker.Set) {
	if set.Len() == 0 {
		color.Yellow("No markers declared")
		return
	}

	color.Green("Declared markers (%d):\n", set.Len())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range set.List() {
		desc := m.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\n", color.CyanString(m.Name), desc)
	}
	w.Flush()
}

// PrintMetaStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintMetaStats() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Total Tests")
	color.White("%-27d │\n", meta.TotalTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed Tests")
	color.Green("%-27d │\n", meta.PassedTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failed Tests")
	color.Red("%-27d │\n", meta.FailedTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	if meta.MarkerExpr != "" {
		fmt.Printf("│ %-31s │ ", "Marker Filter")
		color.White("%-27s │\n", meta.MarkerExpr)
		fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	}

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedTests == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test(s) failed", meta.FailedTests)
		fmt.Println()
		f.printFailedTestsTree(output.Details)
	}

	return nil
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestFailure
	IsFile   bool
}

// printFailedTestsTree prints a tree structure of failed tests
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	fileMap := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		fileMap[failure.FilePath] = append(fileMap[failure.FilePath], failure)
	}

	root := &TreeNode{
		Name:     "",
		Children: make(map[string]*TreeNode),
		IsFile:   false,
	}

	for filePath, fileFailures := range fileMap {
		parts := strings.Split(strings.TrimPrefix(filePath, "./"), "/")
		current := root

		for i, part := range parts {
			if part == "" {
				continue
			}

			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}

			current = current.Children[part]

			if i == len(parts)-1 {
				current.Failures = fileFailures
			}
		}
	}

	f.printTreeNode(root, "", true, true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isLast bool, isRoot bool) {
	// Sort children for consistent output
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		var connector string
		if isRoot {
			connector = ""
		} else if isLastChild {
			connector = prefix + "   |_"
		} else {
			connector = prefix + "  |_"
		}

		if child.IsFile {
			color.Yellow("%s%s", connector, child.Name)
		} else {
			color.Cyan("%s%s", connector, child.Name)
		}

		if child.IsFile && len(child.Failures) > 0 {
			for j, failure := range child.Failures {
				isLastCase := j == len(child.Failures)-1
				var casePrefix string
				if isLastChild {
					if isLastCase {
						casePrefix = strings.ReplaceAll(prefix, "|", " ") + "        |_"
					} else {
						casePrefix = prefix + "  |        |_"
					}
				} else {
					if isLastCase {
						casePrefix = prefix + "  |        |_"
					} else {
						casePrefix = prefix + "  |  |     |_"
					}
				}
				color.Red("%s%s", casePrefix, failure.TestName)
			}
		}

		var newPrefix string
		if isRoot {
			newPrefix = "  "
		} else if isLastChild {
			newPrefix = strings.ReplaceAll(prefix, "|", " ") + "  "
		} else {
			newPrefix = prefix + "  |"
		}
		f.printTreeNode(child, newPrefix, isLastChild, false)
	}
}
