package platform

import (
	"path/filepath"
	"strings"

	"github.com/mrz1836/postbuild/internal/constants"
	"github.com/mrz1836/postbuild/internal/domain"
)

// PlanInput carries what a relocation plan needs to know.
type PlanInput struct {
	// ArtifactPath is the build output handed in by the pipeline.
	ArtifactPath string

	// ProductName is the product name used for the executable and data directory.
	ProductName string

	// VersionName is "{productName}_{version}_{versionCode}".
	VersionName string

	// WebOptionalDirs lists web asset directories moved only when present.
	WebOptionalDirs []string
}

// VersionName builds "{productName}_{version}_{versionCode}".
func VersionName(productName, version, versionCode string) string {
	return strings.Join([]string{productName, version, versionCode}, constants.NameSeparator)
}

// Plan returns the ordered relocation operations for p and the path the
// build output will live at afterward. For RelocateNone the plan is empty and
// the output path is the artifact path.
func (p Profile) Plan(in PlanInput) ([]domain.Operation, string) {
	switch p.Relocation {
	case RelocateSingleFile:
		return planSingleFile(p, in)
	case RelocateWindows:
		return planWindows(in)
	case RelocateWeb:
		return planWeb(in)
	case RelocateNone:
		return nil, in.ArtifactPath
	default:
		return nil, in.ArtifactPath
	}
}

func planSingleFile(p Profile, in PlanInput) ([]domain.Operation, string) {
	dst := filepath.Join(filepath.Dir(in.ArtifactPath), in.VersionName+p.Extension)
	return []domain.Operation{
		{Kind: domain.OpMove, Source: in.ArtifactPath, Destination: dst},
	}, dst
}

// planWindows moves Game.exe and Game_Data into {dir}/{name}/, renaming both
// after the product name.
func planWindows(in PlanInput) ([]domain.Operation, string) {
	dst := filepath.Join(filepath.Dir(in.ArtifactPath), in.VersionName)
	dataDir := strings.TrimSuffix(in.ArtifactPath, filepath.Ext(in.ArtifactPath)) + constants.WindowsDataSuffix

	return []domain.Operation{
		{Kind: domain.OpMkdir, Destination: dst},
		{
			Kind:        domain.OpMove,
			Source:      in.ArtifactPath,
			Destination: filepath.Join(dst, in.ProductName+constants.WindowsExecutableExt),
		},
		{
			Kind:        domain.OpMove,
			Source:      dataDir,
			Destination: filepath.Join(dst, in.ProductName+constants.WindowsDataSuffix),
		},
	}, dst
}

// planWeb creates {artifact}/{name}/ and moves the page and asset directories into it.
func planWeb(in PlanInput) ([]domain.Operation, string) {
	dst := filepath.Join(in.ArtifactPath, in.VersionName)

	ops := []domain.Operation{
		{Kind: domain.OpMkdir, Destination: dst},
		{
			Kind:        domain.OpMove,
			Source:      filepath.Join(in.ArtifactPath, constants.WebIndexFile),
			Destination: filepath.Join(dst, constants.WebIndexFile),
		},
	}
	for _, dir := range in.WebOptionalDirs {
		ops = append(ops, domain.Operation{
			Kind:        domain.OpMoveIfExists,
			Source:      filepath.Join(in.ArtifactPath, dir),
			Destination: filepath.Join(dst, dir),
		})
	}
	return ops, dst
}
