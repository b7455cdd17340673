// Package appupdate checks GitHub releases for a newer build.
package appupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultLatestReleaseURL = "https://api.github.com/repos/openclaw/yta/releases/latest"
	defaultRequestTimeout   = 1500 * time.Millisecond
)

type CheckOptions struct {
	CurrentVersion   string
	LatestReleaseURL string
	Timeout          time.Duration
	HTTPClient       *http.Client
}

type Result struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	UpgradeHint     string
}

// Check compares the running version against the latest stable release.
// Dev builds (non-semver versions) skip the remote call entirely.
func Check(ctx context.Context, opts CheckOptions) (Result, error) {
	currentVersion := normalizeReleaseVersion(opts.CurrentVersion)
	result := Result{
		CurrentVersion: currentVersion,
		UpgradeHint:    upgradeHint(),
	}

	if currentVersion == "" {
		return result, nil
	}

	latestVersion, err := fetchLatestReleaseVersion(ctx, opts, currentVersion)
	if err != nil {
		return result, err
	}

	result.LatestVersion = latestVersion
	result.UpdateAvailable = semver.Compare(latestVersion, currentVersion) > 0
	return result, nil
}

func fetchLatestReleaseVersion(ctx context.Context, opts CheckOptions, currentVersion string) (string, error) {
	latestURL := strings.TrimSpace(opts.LatestReleaseURL)
	if latestURL == "" {
		latestURL = defaultLatestReleaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	requestCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, latestURL, nil)
	if err != nil {
		return "", fmt.Errorf("appupdate: build latest release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "yta/"+currentVersion)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("appupdate: fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("appupdate: fetch latest release: HTTP %d", resp.StatusCode)
	}

	var payload struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("appupdate: decode latest release payload: %w", err)
	}

	latest := normalizeReleaseVersion(payload.TagName)
	if latest == "" {
		return "", fmt.Errorf("appupdate: latest release tag is not a stable semver: %q", payload.TagName)
	}
	return latest, nil
}

func upgradeHint() string {
	if exePath, err := os.Executable(); err == nil {
		resolved, err := filepath.EvalSymlinks(exePath)
		if err == nil && looksLikeGoInstallPath(resolved) {
			return "go install github.com/openclaw/yta/cmd/yta@latest"
		}
	}
	return "download the latest release from https://github.com/openclaw/yta/releases"
}

func looksLikeGoInstallPath(path string) bool {
	path = filepath.ToSlash(filepath.Clean(path))
	if strings.HasSuffix(path, "/go/bin/yta") || strings.HasSuffix(path, "/go/bin/yta.exe") {
		return true
	}
	for _, gp := range filepath.SplitList(os.Getenv("GOPATH")) {
		if gp == "" {
			continue
		}
		gp = filepath.ToSlash(filepath.Clean(gp))
		if path == gp+"/bin/yta" || path == gp+"/bin/yta.exe" {
			return true
		}
	}
	return false
}

// normalizeReleaseVersion canonicalizes a version tag, returning "" for
// anything that is not a stable semver release.
func normalizeReleaseVersion(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	if semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return ""
	}
	return semver.Canonical(v)
}
