package gitpkg

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/arthur-debert/gitpkg/internal/version"
	"github.com/arthur-debert/gitpkg/pkg/errors"
	"github.com/arthur-debert/gitpkg/pkg/logging"
	"github.com/arthur-debert/gitpkg/pkg/settings"
	"github.com/arthur-debert/gitpkg/pkg/style"
)

// app holds the state shared by all commands of one invocation
type app struct {
	verbosity int
	dir       string
	settings  *settings.Settings
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	a := &app{settings: settings.Default()}

	rootCmd := &cobra.Command{
		Use:     "gitpkg",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.dir, "directory", "C", "", MsgFlagDirectory)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "packages",
		Title: "PACKAGES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newDestCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup configures logging, settings and output styling before any command
// runs
func (a *app) setup(cmd *cobra.Command) error {
	s, err := settings.Load(nil)
	if err != nil {
		logging.SetupLogger(a.verbosity)
		return errors.Wrap(err, errors.ErrSettings, MsgErrLoadSettings)
	}
	a.settings = s

	logging.SetupLogger(verbosityFor(a.verbosity, s))

	style.Configure(style.ParseColorMode(s.Output.Color), os.Stdout)

	log.Debug().
		Str("command", cmd.Name()).
		Str("directory", a.dir).
		Str("git", s.Git.Binary).
		Msg("Command started")
	return nil
}

// verbosityFor raises the -v count to debug when the settings ask for it
func verbosityFor(flag int, s *settings.Settings) int {
	if s.Debug && flag < 2 {
		return 2
	}
	return flag
}

// Diagnostic renders err as the message shown to the user, one line per
// combined failure
func Diagnostic(err error) string {
	if errs := multierr.Errors(err); len(errs) > 1 {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = Diagnostic(e)
		}
		return strings.Join(lines, "\n")
	}

	var gpErr *errors.Error
	if stderrors.As(err, &gpErr) {
		return gpErr.Diagnostic()
	}
	return err.Error()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "gitpkg version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
