package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/printer"
	"github.com/dyluth/drafter/pkg/workspace"
)

var (
	treeNodeKind    string
	treeNodeDesc    string
	treeSetFromFile string
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Inspect and edit the virtual file layout",
}

func readLocalFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// splitTreePath turns "src/api/server.go" into its path segments.
func splitTreePath(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

var treeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the file layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		project := sess.ctrl.Project()
		if project.FileTree == nil {
			printer.Info("No file layout yet - generate the File Structure phase first\n")
			return nil
		}

		printNodes(project.FileTree.Nodes(), 0)
		return nil
	},
}

func printNodes(nodes []workspace.FileNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		suffix := ""
		if n.Kind == workspace.KindFolder {
			suffix = "/"
		}
		if n.Description != "" {
			printer.Info("%s%s%s  - %s\n", indent, n.Name, suffix, n.Description)
		} else {
			printer.Info("%s%s%s\n", indent, n.Name, suffix)
		}
		printNodes(n.Children, depth+1)
	}
}

var treeAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a file or folder at the given path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		path := splitTreePath(args[0])
		if len(path) == 0 {
			return printer.Error("Invalid path", "The path cannot be empty.", nil)
		}

		kind := workspace.NodeKind(treeNodeKind)
		if kind != workspace.KindFile && kind != workspace.KindFolder {
			return printer.Error("Invalid kind", "Use --kind file or --kind folder.", nil)
		}

		node := workspace.FileNode{
			Name:        path[len(path)-1],
			Kind:        kind,
			Description: treeNodeDesc,
		}

		if err := sess.ctrl.InsertNode(cmd.Context(), path[:len(path)-1], node); err != nil {
			return printer.Error("Cannot add node", err.Error(), nil)
		}

		printer.Success("Added %s\n", args[0])
		return nil
	},
}

var treeRmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove the node (and subtree) at the given path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		if err := sess.ctrl.RemoveNode(cmd.Context(), splitTreePath(args[0])); err != nil {
			return printer.Error("Cannot remove node", err.Error(), nil)
		}

		printer.Success("Removed %s\n", args[0])
		return nil
	},
}

var treeSetCmd = &cobra.Command{
	Use:   "set <path> [content]",
	Short: "Replace the content of the file at the given path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		content := ""
		if len(args) == 2 {
			content = args[1]
		}
		if treeSetFromFile != "" {
			data, err := readLocalFile(treeSetFromFile)
			if err != nil {
				return printer.Error("Cannot read content file", err.Error(), nil)
			}
			content = data
		}

		if err := sess.ctrl.SetFileContent(cmd.Context(), splitTreePath(args[0]), content); err != nil {
			return printer.Error("Cannot set content", err.Error(), nil)
		}

		printer.Success("Updated %s\n", args[0])
		return nil
	},
}

func init() {
	treeAddCmd.Flags().StringVar(&treeNodeKind, "kind", "file", "Node kind: file or folder")
	treeAddCmd.Flags().StringVar(&treeNodeDesc, "description", "", "Human-readable description of the node")
	treeSetCmd.Flags().StringVar(&treeSetFromFile, "from-file", "", "Read the content from a local file")

	treeCmd.AddCommand(treeShowCmd)
	treeCmd.AddCommand(treeAddCmd)
	treeCmd.AddCommand(treeRmCmd)
	treeCmd.AddCommand(treeSetCmd)
	rootCmd.AddCommand(treeCmd)
}
