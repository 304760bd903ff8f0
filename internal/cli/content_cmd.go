package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/content"
	"github.com/spf13/cobra"
)

var errInvalidContent = errors.New("content has problems")

func newContentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Check and watch lesson content files",
	}

	cmd.AddCommand(
		newContentValidateCmd(app),
		newContentWatchCmd(app),
	)

	return cmd
}

// contentDir picks the directory from the argument, then the config. An
// empty result means the built-in catalog.
func contentDir(app *App, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return app.Config.ContentDir
}

func newContentValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate content files without playing them",
		Long: "Validate every YAML and JSON content file in dir. Without dir the\n" +
			"configured content directory is checked, or the built-in paths when\n" +
			"none is configured.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fsys fs.FS
			if dir := contentDir(app, args); dir != "" {
				info, err := os.Stat(dir)
				if err != nil {
					return fmt.Errorf("content dir: %w", err)
				}
				if !info.IsDir() {
					return fmt.Errorf("content dir %s is not a directory", dir)
				}
				fsys = os.DirFS(dir)
			} else {
				fsys = content.Builtin()
			}

			files, err := content.Files(fsys)
			if err != nil {
				return err
			}
			_, err = content.LoadFS(ctxOf(cmd), fsys)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidation(len(files), err))
			if err != nil {
				return errInvalidContent
			}
			return nil
		},
	}
}

func newContentWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-validate a content directory on every change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := contentDir(app, args)
			if dir == "" {
				return errors.New("no content directory: pass one or set content_dir in config.yaml")
			}
			ctx := ctxOf(cmd)
			out := cmd.OutOrStdout()

			report := func(cat *content.Catalog, err error) {
				if err != nil {
					fmt.Fprint(out, formatter.FormatValidation(0, err))
					return
				}
				fmt.Fprintln(out, formatter.Success(fmt.Sprintf("%d path(s) loaded from %s", cat.Len(), dir)))
			}
			report(content.LoadDir(ctx, dir))
			fmt.Fprintln(out, formatter.Dim("Watching "+dir+" (ctrl+c to stop)"))

			return content.Watch(ctx, dir, report, content.WithWatchErrors(func(err error) {
				app.logger().WarnContext(ctx, "content watcher error", "dir", dir, "error", err)
			}))
		},
	}
}
