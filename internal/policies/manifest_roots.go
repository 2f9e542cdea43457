package policies

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"workload-manifests/internal/types"
)

const (
	ManifestRootsEnv              = "DOTNETSDK_WORKLOAD_MANIFEST_ROOTS"
	IgnoreDefaultManifestRootsEnv = "DOTNETSDK_WORKLOAD_MANIFEST_IGNORE_DEFAULT_ROOTS"

	ManifestsFolderName  = "sdk-manifests"
	InstallStateFileName = "default.json"
)

// RootInputs carries the filesystem facts the root policy depends on, so
// the policy itself stays pure.
type RootInputs struct {
	SdkRoot        string
	UserProfileDir string
	// UserLocal is true when the SDK installs workloads for this band into
	// the user profile.
	UserLocal      bool
	UserRootExists bool
}

// ManifestRootPolicy reads the environment through an os.LookupEnv style
// function, so a variable set to the empty string still counts as set.
type ManifestRootPolicy struct {
	LookupEnv     func(string) (string, bool)
	ListSeparator string
}

func NewManifestRootPolicy(lookupEnv func(string) (string, bool)) ManifestRootPolicy {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return ManifestRootPolicy{LookupEnv: lookupEnv, ListSeparator: string(os.PathListSeparator)}
}

// Resolve orders manifest roots: roots from the environment first, then
// the user profile root (user-local installs only), then the SDK root.
// Any value of the ignore variable, including an empty one, drops the
// default roots.
func (p ManifestRootPolicy) Resolve(in RootInputs) types.ManifestRoots {
	lookupEnv := p.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	_, ignoreDefaults := lookupEnv(IgnoreDefaultManifestRootsEnv)
	sdkManifests := filepath.Join(in.SdkRoot, ManifestsFolderName)
	userManifests := UserManifestRoot(in.UserProfileDir)

	result := types.ManifestRoots{InstallRoot: in.SdkRoot}
	var defaults []string
	if userManifests != "" && in.UserLocal && in.UserRootExists {
		result.InstallRoot = in.UserProfileDir
		defaults = []string{userManifests, sdkManifests}
	} else {
		defaults = []string{sdkManifests}
	}
	if ignoreDefaults {
		defaults = nil
	}

	if fromEnv, _ := lookupEnv(ManifestRootsEnv); fromEnv != "" {
		separator := p.ListSeparator
		if separator == "" {
			separator = string(os.PathListSeparator)
		}
		for _, root := range strings.Split(fromEnv, separator) {
			if strings.TrimSpace(root) == "" {
				continue
			}
			result.Roots = append(result.Roots, root)
		}
	}
	result.Roots = append(result.Roots, defaults...)
	return result
}

func UserManifestRoot(userProfileDir string) string {
	if strings.TrimSpace(userProfileDir) == "" {
		return ""
	}
	return filepath.Join(userProfileDir, ManifestsFolderName)
}

// InstallStatePath is <installRoot>/metadata/workloads/<arch>/<band>/InstallState/default.json.
func InstallStatePath(installRoot string, band types.SdkFeatureBand, arch string) string {
	return filepath.Join(installRoot, "metadata", "workloads", arch, band.String(), "InstallState", InstallStateFileName)
}

// ProcessArchitecture names the running architecture the way the SDK's
// installer spells it in metadata paths.
func ProcessArchitecture() string {
	return ArchitectureName(runtime.GOARCH)
}

func ArchitectureName(goarch string) string {
	switch goarch {
	case "amd64":
		return "X64"
	case "386":
		return "X86"
	case "arm64":
		return "Arm64"
	case "arm":
		return "Arm"
	case "s390x":
		return "S390x"
	case "ppc64le":
		return "Ppc64le"
	case "loong64":
		return "LoongArch64"
	case "riscv64":
		return "RiscV64"
	default:
		return goarch
	}
}
