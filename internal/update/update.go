package update

import (
	"EnvStore/internal/config"
	"EnvStore/internal/console"
	"EnvStore/internal/logger"
	"EnvStore/internal/version"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
)

// repoSlug is the GitHub owner/repo releases are published under.
const repoSlug = "envstore/envstore"

var (
	// UpdateAvailable is true once a newer release has been detected.
	UpdateAvailable bool
	// LatestVersion is the tag name of the latest detected release.
	LatestVersion string
)

// SelfUpdate replaces the running binary with a release from GitHub.
// requestedVersion may be a channel name ("stable", "beta", ...) or a
// specific tag ("v1.2.3"); empty means the configured channel.
func SelfUpdate(ctx context.Context, conf config.AppConfig, force bool, yes bool, requestedVersion string) error {
	repo := selfupdate.ParseSlug(repoSlug)

	currentChannel := GetCurrentChannel(conf)
	if requestedVersion == "" {
		requestedVersion = currentChannel
	}

	updater, err := getUpdater(requestedVersion)
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	var (
		latest *selfupdate.Release
		found  bool
	)
	if strings.HasPrefix(requestedVersion, "v") {
		latest, found, err = updater.DetectVersion(ctx, repo, requestedVersion)
	} else {
		latest, found, err = updater.DetectLatest(ctx, repo)
	}
	if err != nil {
		return fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no version found for target %s", requestedVersion)
	}

	remoteVersion := latest.Version()
	currentVersion := version.Version

	// Strict channel matching, except when a specific version was requested.
	if !strings.HasPrefix(requestedVersion, "v") {
		remoteChannel := GetChannelFromVersion(remoteVersion)
		if !strings.EqualFold(remoteChannel, currentChannel) && !strings.EqualFold(requestedVersion, remoteChannel) {
			logger.Warn(ctx, "{{_ApplicationName_}}%s{{_NC_}} is on channel '%s', but the latest release is on channel '%s'. Ignoring.",
				version.ApplicationName, currentChannel, remoteChannel)
			return nil
		}
	}

	question := ""
	initiationNotice := ""
	noNotice := fmt.Sprintf("{{_ApplicationName_}}%s{{_NC_}} will not be updated.", version.ApplicationName)

	noticePrinter := func(ctx context.Context, msg string, args ...any) {
		logger.Notice(ctx, msg, args...)
	}

	if currentVersion == remoteVersion {
		if force {
			question = fmt.Sprintf("Would you like to forcefully re-apply {{_ApplicationName_}}%s{{_NC_}} update '{{_Version_}}%s{{_NC_}}'?",
				version.ApplicationName, currentVersion)
			initiationNotice = fmt.Sprintf("Forcefully re-applying {{_ApplicationName_}}%s{{_NC_}} update '{{_Version_}}%s{{_NC_}}'",
				version.ApplicationName, remoteVersion)
		} else {
			logger.Notice(ctx, "{{_ApplicationName_}}%s{{_NC_}} is already up to date on channel '%s'.", version.ApplicationName, requestedVersion)
			logger.Notice(ctx, "Current version is '{{_Version_}}%s{{_NC_}}'", currentVersion)
			return nil
		}
	} else {
		question = fmt.Sprintf("Would you like to update {{_ApplicationName_}}%s{{_NC_}} from '{{_Version_}}%s{{_NC_}}' to '{{_Version_}}%s{{_NC_}}' now?",
			version.ApplicationName, currentVersion, remoteVersion)
		initiationNotice = fmt.Sprintf("Updating {{_ApplicationName_}}%s{{_NC_}} from '{{_Version_}}%s{{_NC_}}' to '{{_Version_}}%s{{_NC_}}'",
			version.ApplicationName, currentVersion, remoteVersion)
	}

	if !console.QuestionPrompt(ctx, noticePrinter, question, "Y", yes) {
		logger.Notice(ctx, noNotice)
		return nil
	}

	logger.Notice(ctx, initiationNotice)
	if strings.HasPrefix(requestedVersion, "v") {
		exe, exeErr := os.Executable()
		if exeErr != nil {
			return fmt.Errorf("failed to locate executable: %w", exeErr)
		}
		err = updater.UpdateTo(ctx, latest, exe)
	} else {
		_, err = updater.UpdateSelf(ctx, version.Version, repo)
	}

	if err != nil {
		if strings.Contains(err.Error(), "permission denied") || strings.Contains(err.Error(), "Access is denied") {
			logger.Warn(ctx, "Permission denied. Attempting to run with sudo...")
			exe, _ := os.Executable()
			args := os.Args[1:]
			cmd := exec.Command("sudo", append([]string{exe}, args...)...)
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if runErr := cmd.Run(); runErr != nil {
				return fmt.Errorf("failed to update with sudo: %w", runErr)
			}
			return nil
		}
		return fmt.Errorf("failed to update application: %w", err)
	}

	logger.Notice(ctx, "Updated {{_ApplicationName_}}%s{{_NC_}} to '{{_Version_}}%s{{_NC_}}'", version.ApplicationName, remoteVersion)
	return nil
}

// GetUpdateStatus checks for a newer release without prompting and records
// the outcome in UpdateAvailable/LatestVersion.
func GetUpdateStatus(ctx context.Context, conf config.AppConfig) bool {
	available, latest := checkAppUpdate(ctx, conf)
	UpdateAvailable = available
	LatestVersion = latest
	return available
}

// CheckUpdates performs the startup update check and tells the user when a
// newer release exists.
func CheckUpdates(ctx context.Context, conf config.AppConfig) {
	if GetUpdateStatus(ctx, conf) {
		AnnounceUpdate(ctx)
	} else {
		// Hidden by default; -v shows it.
		logger.Info(ctx, GetVersionDisplay())
	}
}

// AnnounceUpdate tells the user about a release recorded by GetUpdateStatus.
// It prints nothing when the running version is current, so main can call it
// unconditionally once the background check has finished.
func AnnounceUpdate(ctx context.Context) {
	if !UpdateAvailable {
		return
	}
	msg := []string{
		GetVersionDisplay(),
		fmt.Sprintf("An update to {{_ApplicationName_}}%s{{_NC_}} is available.", version.ApplicationName),
		fmt.Sprintf("Run '{{_UserCommand_}}%s --update{{_NC_}}' to update to version '{{_Version_}}%s{{_NC_}}'.", version.CommandName, LatestVersion),
	}
	logger.Notice(ctx, msg)
}

// GetVersionDisplay returns the application name with its version.
func GetVersionDisplay() string {
	return fmt.Sprintf("{{_ApplicationName_}}%s{{_NC_}} [{{_Version_}}%s{{_NC_}}]", version.ApplicationName, version.Version)
}

func checkAppUpdate(ctx context.Context, conf config.AppConfig) (bool, string) {
	repo := selfupdate.ParseSlug(repoSlug)

	channel := GetCurrentChannel(conf)
	updater, err := getUpdater(channel)
	if err != nil {
		return false, ""
	}

	latest, found, err := updater.DetectLatest(ctx, repo)
	if err != nil || !found {
		return false, ""
	}

	remoteVersion := latest.Version()
	remoteChannel := GetChannelFromVersion(remoteVersion)
	if !strings.EqualFold(remoteChannel, channel) {
		return false, ""
	}

	if compareVersions(remoteVersion, version.Version) > 0 {
		return true, remoteVersion
	}
	return false, version.Version
}

// compareVersions compares two version strings and returns -1, 0, or 1.
// Strict semver when both sides parse, with a part-by-part fallback for
// date-based schemes like 2024.01.20.1.
func compareVersions(v1, v2 string) int {
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	sv1, err1 := semver.NewVersion(v1)
	sv2, err2 := semver.NewVersion(v2)
	if err1 == nil && err2 == nil {
		return sv1.Compare(sv2)
	}

	p1 := strings.Split(v1, ".")
	p2 := strings.Split(v2, ".")

	for i := 0; i < len(p1) && i < len(p2); i++ {
		s1 := p1[i]
		s2 := p2[i]
		if s1 == s2 {
			continue
		}

		// A part with a -suffix is a pre-release: stable wins.
		h1 := strings.Contains(s1, "-")
		h2 := strings.Contains(s2, "-")
		if h1 || h2 {
			if h1 != h2 {
				if h1 {
					return -1
				}
				return 1
			}
			if s1 > s2 {
				return 1
			}
			return -1
		}

		n1, e1 := strconv.Atoi(s1)
		n2, e2 := strconv.Atoi(s2)
		if e1 == nil && e2 == nil {
			if n1 > n2 {
				return 1
			}
			return -1
		}

		if s1 > s2 {
			return 1
		}
		return -1
	}

	if len(p1) == len(p2) {
		return 0
	}
	if len(p1) > len(p2) {
		// 2024.01.20.1 > 2024.01.20, unless the extra part is a suffix.
		if strings.Contains(p1[len(p2)], "-") {
			return -1
		}
		return 1
	}
	if strings.Contains(p2[len(p1)], "-") {
		return 1
	}
	return -1
}

// getUpdater returns an updater configured for the channel: anything but
// stable sees prereleases.
func getUpdater(channel string) (*selfupdate.Updater, error) {
	cfg := selfupdate.Config{
		Prerelease: !strings.EqualFold(channel, "stable") && !strings.HasPrefix(channel, "v"),
	}
	return selfupdate.NewUpdater(cfg)
}

// GetCurrentChannel returns the configured update channel, falling back to
// the channel implied by the running version.
func GetCurrentChannel(conf config.AppConfig) string {
	if channel := strings.TrimSpace(conf.Behavior.UpdateChannel); channel != "" {
		return channel
	}
	return GetChannelFromVersion(version.Version)
}

// GetChannelFromVersion extracts the channel from a version string: the
// pre-release suffix when there is one, stable otherwise.
func GetChannelFromVersion(v string) string {
	parts := strings.SplitN(v, "-", 2)
	if len(parts) > 1 {
		return parts[1]
	}
	return "stable"
}
