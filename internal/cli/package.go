package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qpack-dev/qpack/internal/logger"
	"github.com/qpack-dev/qpack/pkg/config"
	"github.com/qpack-dev/qpack/pkg/copier"
	"github.com/qpack-dev/qpack/pkg/hook"
	"github.com/qpack-dev/qpack/pkg/locator"
	"github.com/qpack-dev/qpack/pkg/packager"
	"github.com/qpack-dev/qpack/pkg/project"
)

// Shared pointers to the root command's persistent flags.
var (
	ConfigPath *string
	Verbose    *bool
)

// NewPackageCmd creates the package command.
func NewPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package <project-file>",
		Short: "Package a project and everything it references into a portable archive",
		Long: `Package resolves every layer datasource of a QGIS project (.qgs or .qgz),
copies the referenced files into a <project>_packaged/Links directory,
rewrites the project to use package-relative references, and zips the
result. Unresolvable layers are skipped and reported; the run continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackage(cmd, args[0])
		},
	}

	return cmd
}

func runPackage(cmd *cobra.Command, projectPath string) error {
	cfg, err := config.LoadOrDefault(stringFlag(ConfigPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		logLevel = "debug"
	}
	logger.InitLogger(logLevel)

	ctx := cmd.Context()

	proj, err := project.Load(ctx, projectPath)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	logger.Info("project loaded", logger.Fields{"name": proj.Name, "path": proj.Path})

	hooks := hook.NewTengoExecutor()
	if err := hook.LoadFromProjectDir(hooks, proj.Dir); err != nil {
		return fmt.Errorf("failed to load hooks: %w", err)
	}

	loc := locator.New(proj.Dir, locator.Options{
		SearchDepth: cfg.Packaging.SearchDepth,
		ExtraRoots:  cfg.Packaging.ExtraSearchRoots,
	})
	cop := copier.New(cfg.Packaging.SidecarExtensions...)

	result, err := packager.New(loc, cop, hooks).Run(ctx, proj, packager.Options{
		SkipProviders: cfg.Packaging.SkipProviders,
	})
	if err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	fmt.Printf("Package created: %s\n", result.ArchivePath)
	fmt.Printf("Processed: %d layers | Skipped: %d layers\n", result.Processed, result.Skipped)
	return nil
}

func stringFlag(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
