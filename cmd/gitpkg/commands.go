package gitpkg

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/gitpkg/pkg/commands"
	"github.com/arthur-debert/gitpkg/pkg/config"
	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/reconcile"
	"github.com/arthur-debert/gitpkg/pkg/style"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		opts          commands.AddPackageOptions
		installMethod string
	)

	cmd := &cobra.Command{
		Use:     "add <url>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "packages",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := a.settings.Install.Method
			if cmd.Flags().Changed("install-method") {
				method = installMethod
			}
			parsed, ok := config.ParseInstallMethod(method)
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, MsgErrInstallMethod, method)
			}

			opts.Dir = a.dir
			opts.GitBinary = a.settings.Git.Binary
			opts.URL = args[0]
			opts.InstallMethod = parsed

			spinner := style.StartSpinner(os.Stderr, fmt.Sprintf(MsgInstalling, opts.URL))
			result, err := commands.AddPackage(opts)
			spinner.Stop()
			if err != nil {
				return err
			}

			printMsg(cmd.OutOrStdout(), MsgPackageInstalled, result.Destination, result.Package, result.Location)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Name, "name", "", MsgFlagName)
	flags.StringVar(&opts.DestName, "dest-name", "", MsgFlagDestName)
	flags.StringVarP(&opts.PackageRoot, "package-root", "r", "", MsgFlagPackageRoot)
	flags.StringVar(&opts.PackageRootWithName, "package-root-with-name", "", MsgFlagPackageRootWithName)
	flags.StringVarP(&opts.Branch, "branch", "b", "", MsgFlagBranch)
	flags.BoolVar(&opts.DisableUpdates, "disable-updates", false, MsgFlagDisableUpdates)
	flags.StringVar(&installMethod, "install-method", "", MsgFlagInstallMethod)

	cmd.MarkFlagsMutuallyExclusive("name", "package-root-with-name")
	cmd.MarkFlagsMutuallyExclusive("package-root", "package-root-with-name")

	_ = cmd.RegisterFlagCompletionFunc("install-method", cobra.FixedCompletions(
		[]string{string(config.MethodLink), string(config.MethodCopy)}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("dest-name", a.completeDestinations)

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Example: MsgListExample,
		GroupID: "packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(format)
			if err != nil {
				return err
			}

			result, err := commands.ListPackages(commands.ListPackagesOptions{
				Dir:       a.dir,
				GitBinary: a.settings.Git.Binary,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f != style.FormatText {
				return style.Encode(out, f, result)
			}
			return renderPackages(out, result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func renderPackages(out io.Writer, result *commands.ListPackagesResult) error {
	if result.PackageCount() == 0 {
		printMsg(out, MsgNoPackages)
		return nil
	}

	printed := false
	for _, d := range result.Destinations {
		if len(d.Packages) == 0 {
			continue
		}
		if printed {
			_, _ = fmt.Fprintln(out)
		}
		printed = true
		printMsg(out, MsgDestinationHeading, d.Name, d.Path)

		rows := make([][]string, 0, len(d.Packages))
		for _, p := range d.Packages {
			branch := p.Branch
			if branch == "" {
				branch = style.MutedStyle.Render("default")
			}

			commit := style.MutedStyle.Render("-")
			state := style.PendingIndicator + " missing"
			if p.Installed {
				state = style.SuccessIndicator + " installed"
				if p.Commit != nil {
					commit = style.CommitStyle.Render(p.Commit.ShortHash())
				}
			}
			if p.UpdatesDisabled {
				state += style.MutedStyle.Render(" (pinned)")
			}

			rows = append(rows, []string{
				style.PackageStyle.Render(p.Name),
				branch,
				string(p.InstallMethod),
				commit,
				state,
			})
		}

		table, err := style.RenderTable([]string{"Package", "Branch", "Method", "Commit", "State"}, rows)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, table)
	}
	return nil
}

func newRemoveCmd(a *app) *cobra.Command {
	var destName string

	cmd := &cobra.Command{
		Use:               "remove <package>",
		Aliases:           []string{"rm"},
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		GroupID:           "packages",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completePackages,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.RemovePackage(commands.RemovePackageOptions{
				Dir:       a.dir,
				GitBinary: a.settings.Git.Binary,
				Ref:       args[0],
				DestName:  destName,
			})
			if err != nil {
				return err
			}

			printMsg(cmd.OutOrStdout(), MsgPackageRemoved, result.Destination, result.Package)
			return nil
		},
	}

	cmd.Flags().StringVar(&destName, "dest-name", "", MsgFlagDestName)
	_ = cmd.RegisterFlagCompletionFunc("dest-name", a.completeDestinations)

	return cmd
}

func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		GroupID: "packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := style.StartSpinner(os.Stderr, fmt.Sprintf(MsgInstalling, "packages"))
			result, err := commands.InstallPackages(commands.InstallPackagesOptions{
				Dir:       a.dir,
				GitBinary: a.settings.Git.Binary,
				OnPackage: func(dest, name string) {
					spinner.UpdateText(fmt.Sprintf(MsgInstalling, dest+"/"+name))
				},
			})
			spinner.Stop()
			if result == nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ref := range result.Installed {
				printMsg(out, MsgPackageReady, ref)
			}
			printMsg(out, MsgInstallSummary, len(result.Installed), len(result.Unchanged), len(result.Failed))
			return err
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		force  bool
		format string
	)

	cmd := &cobra.Command{
		Use:               "update [package]",
		Short:             MsgUpdateShort,
		Long:              MsgUpdateLong,
		GroupID:           "packages",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.completePackages,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.outputFormat(format)
			if err != nil {
				return err
			}

			opts := commands.UpdatePackagesOptions{
				Dir:       a.dir,
				GitBinary: a.settings.Git.Binary,
				Force:     force,
			}
			if len(args) == 1 {
				opts.Ref = args[0]
			}

			spinner := style.StartSpinner(os.Stderr, fmt.Sprintf(MsgUpdating, "packages"))
			opts.OnPackage = func(dest, name string) {
				spinner.UpdateText(fmt.Sprintf(MsgUpdating, dest+"/"+name))
			}
			results, err := commands.UpdatePackages(opts)
			spinner.Stop()

			out := cmd.OutOrStdout()
			if f != style.FormatText {
				if results == nil {
					results = []*reconcile.UpdateResult{}
				}
				if encErr := style.Encode(out, f, results); encErr != nil {
					return encErr
				}
				return err
			}

			for _, r := range results {
				printUpdate(out, r)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func printUpdate(out io.Writer, r *reconcile.UpdateResult) {
	ref := r.Destination + "/" + r.Package
	switch r.Status {
	case reconcile.StatusUpdated:
		printMsg(out, MsgUpdateUpdated, ref, r.Before.ShortHash(), r.After.ShortHash())
	case reconcile.StatusUpToDate:
		printMsg(out, MsgUpdateUpToDate, ref)
	case reconcile.StatusSkipped:
		printMsg(out, MsgUpdateSkipped, ref)
	case reconcile.StatusDisabled:
		printMsg(out, MsgUpdateDisabled, ref)
	}
}

func newDestCmd(a *app) *cobra.Command {
	var format string

	list := func(cmd *cobra.Command, args []string) error {
		f, err := a.outputFormat(format)
		if err != nil {
			return err
		}

		dests, err := commands.ListDestinations(commands.ListDestinationsOptions{
			Dir:       a.dir,
			GitBinary: a.settings.Git.Binary,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if f != style.FormatText {
			return style.Encode(out, f, dests)
		}
		if len(dests) == 0 {
			printMsg(out, MsgNoDestinations)
			return nil
		}

		rows := make([][]string, len(dests))
		for i, d := range dests {
			rows[i] = []string{
				style.DestinationStyle.Render(d.Name),
				style.PathStyle.Render(d.Path),
				strconv.Itoa(d.Packages),
			}
		}
		table, err := style.RenderTable([]string{"Destination", "Path", "Packages"}, rows)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, table)
		return nil
	}

	cmd := &cobra.Command{
		Use:     "dest",
		Short:   MsgDestShort,
		Long:    MsgDestLong,
		GroupID: "packages",
		Args:    cobra.NoArgs,
		RunE:    list,
	}
	cmd.PersistentFlags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgDestListShort,
		Args:    cobra.NoArgs,
		RunE:    list,
	})

	var name string
	addCmd := &cobra.Command{
		Use:   "add <path>",
		Short: MsgDestAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := commands.AddDestination(commands.AddDestinationOptions{
				Dir:       a.dir,
				GitBinary: a.settings.Git.Binary,
				Path:      args[0],
				Name:      name,
			})
			if err != nil {
				return err
			}

			printMsg(cmd.OutOrStdout(), MsgDestAdded, d.Name, d.Path)
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", MsgFlagDestinationName)
	cmd.AddCommand(addCmd)

	return cmd
}

// outputFormat resolves the --format flag, falling back to the configured
// default
func (a *app) outputFormat(flag string) (style.Format, error) {
	if flag == "" {
		flag = a.settings.Output.Format
	}
	f, err := style.ParseFormat(flag)
	if err != nil {
		return f, errors.Wrap(err, errors.ErrInvalidInput, "invalid output format")
	}
	return f, nil
}

func (a *app) completePackages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	result, err := commands.ListPackages(commands.ListPackagesOptions{Dir: a.dir, GitBinary: a.settings.Git.Binary})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, d := range result.Destinations {
		for _, p := range d.Packages {
			for _, candidate := range []string{p.Name, d.Name + "/" + p.Name} {
				if strings.HasPrefix(candidate, toComplete) {
					names = append(names, candidate)
				}
			}
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (a *app) completeDestinations(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	dests, err := commands.ListDestinations(commands.ListDestinationsOptions{Dir: a.dir, GitBinary: a.settings.Git.Binary})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, d := range dests {
		if strings.HasPrefix(d.Name, toComplete) {
			names = append(names, d.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{string(style.FormatText), string(style.FormatYAML), string(style.FormatJSON)}, cobra.ShellCompDirectiveNoFileComp
}

// printMsg renders a markup message and writes it as one line
func printMsg(out io.Writer, msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	_, _ = fmt.Fprintln(out, style.Render(msg))
}
