package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mundi-engine/reflectgen/internal/cli/ui"
	"github.com/mundi-engine/reflectgen/internal/compiler/classifier"
	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List reflected classes without generating code",
		Long: `Scan headers and print every reflected class with its member counts.

With --verbose each class is followed by its properties and their
registration categories. With --json the full metadata manifest is printed.`,
		Example: `  reflectgen list
  reflectgen list Engine/Source -v
  reflectgen list --json > manifest.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, args, &flags)
			if err != nil {
				return err
			}

			logger := newLogger(flags.verbose)
			defer logger.Sync()

			result, err := newScanner(opts, logger).FindReflectionClasses(commandContext(cmd), opts.SourceDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.WriteDiagnostics(cmd.ErrOrStderr(), result.Diagnostics, false)

			if flags.json {
				data, err := metadata.Serialize(metadata.NewManifest(result.Classes))
				if err != nil {
					return fmt.Errorf("failed to serialize manifest: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			if len(result.Classes) == 0 {
				fmt.Fprintf(out, "No reflected classes found in %d header(s)\n", result.FilesScanned)
				return nil
			}

			table := ui.NewTable(out, false, "Class", "Parent", "Kind", "Properties", "Functions", "Lua", "Header")
			for _, cls := range result.Classes {
				table.AddRow(
					cls.Name,
					cls.Parent,
					classKind(cls),
					strconv.Itoa(len(cls.Properties)),
					strconv.Itoa(len(cls.Functions)),
					strconv.Itoa(len(cls.LuaFunctions())),
					filepath.ToSlash(cls.SourcePath),
				)
			}
			table.Render()

			if flags.verbose {
				for _, cls := range result.Classes {
					if len(cls.Properties) == 0 {
						continue
					}
					fmt.Fprintln(out)
					ui.Header(out, cls.Name, false)
					props := ui.NewTable(out, false, "Property", "Type", "Category", "Registration")
					for _, p := range cls.Properties {
						props.AddRow(p.Name, p.Type, p.Category, string(classifier.Of(p)))
					}
					props.Render()
				}
			}

			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}

func classKind(cls *metadata.ClassDecl) string {
	if cls.IsSpawnable {
		return "spawnable"
	}
	return "component"
}
