package gitpkg

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A git powered package manager built on top of submodules"
	MsgDestShort       = "Manage destinations"
	MsgDestListShort   = "List destinations"
	MsgDestAddShort    = "Register a directory as destination"
	MsgAddShort        = "Add and install a package to a destination"
	MsgListShort       = "List packages"
	MsgRemoveShort     = "Remove a package"
	MsgInstallShort    = "Install all packages"
	MsgUpdateShort     = "Update packages"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages, rendered through style.Render
	MsgDestAdded          = "Registered destination [destination]%s[/destination] at [path]%s[/path]"
	MsgNoDestinations     = "No destinations registered."
	MsgPackageInstalled   = "[success]✓[/success] Installed [destination]%s[/destination]/[package]%s[/package] at [path]%s[/path]"
	MsgPackageReady       = "[success]✓[/success] Installed [package]%s[/package]"
	MsgPackageRemoved     = "[success]✓[/success] Removed [destination]%s[/destination]/[package]%s[/package]"
	MsgInstalling         = "Installing %s..."
	MsgUpdating           = "Updating %s..."
	MsgInstallSummary     = "%d installed, %d already installed, %d failed"
	MsgNoPackages         = "No packages declared."
	MsgDestinationHeading = "[title]%s[/title] [muted](%s)[/muted]"

	MsgUpdateUpdated  = "[success]✓[/success] %s updated [commit]%s[/commit] → [commit]%s[/commit]"
	MsgUpdateUpToDate = "[info]•[/info] %s is up to date"
	MsgUpdateSkipped  = "[warning]![/warning] %s has local modifications, skipped (use --force to discard them)"
	MsgUpdateDisabled = "[muted]○ %s has updates disabled (use --force to update anyway)[/muted]"

	// Flag descriptions
	MsgFlagVerbose             = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDirectory           = "Run as if gitpkg was started in this directory"
	MsgFlagDestName            = "Target destination name"
	MsgFlagName                = "Overwrite the name of the package"
	MsgFlagDestinationName     = "Name of the destination, defaults to the directory name"
	MsgFlagPackageRoot         = "Directory inside the repository to be used as the package"
	MsgFlagPackageRootWithName = "Combines --package-root and --name, the name is the last segment of the package root"
	MsgFlagBranch              = "Branch to track, defaults to the repository default"
	MsgFlagDisableUpdates      = "Disable updates for this package"
	MsgFlagInstallMethod       = "How the package is placed in the destination: link or copy"
	MsgFlagFormat              = "Output format: text, yaml or json"
	MsgFlagForce               = "Update packages with updates disabled or local modifications"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrInstallMethod = "invalid install method '%s', expected link or copy"
	MsgErrLoadSettings  = "failed to load settings"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/dest-long.txt
	msgDestLongRaw string
	MsgDestLong    = strings.TrimSpace(msgDestLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
