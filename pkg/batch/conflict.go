package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mdubois/filebatch/pkg/fsops"
	"github.com/mdubois/filebatch/pkg/models"
)

// maxRenameAttempts bounds unique-name probing so a pathological directory
// cannot make the worker loop forever
const maxRenameAttempts = 999

// resolveConflict returns the concrete decision for a collision at dst.
// The registered resolver is consulted when present, otherwise the
// operation's default policy applies. OverwriteOlder is reduced to
// Overwrite or Skip here; Ask with no resolver to answer degrades to Skip.
func (op *Operation) resolveConflict(item *models.OperationItem, dst string) models.ConflictResolution {
	conflict := op.describeConflict(item, dst)

	resolution := op.defaultResolution
	if op.resolver != nil {
		resolution = op.resolver(conflict)
	}

	if resolution == models.ResolutionOverwriteOlder {
		if conflict.SourceModTime.After(conflict.DestModTime) {
			resolution = models.ResolutionOverwrite
		} else {
			resolution = models.ResolutionSkip
		}
	}

	if resolution == models.ResolutionAsk || !resolution.Valid() {
		resolution = models.ResolutionSkip
	}

	return resolution
}

// describeConflict builds the conflict record handed to the resolver.
// Sizes and times that cannot be read are left at their zero values.
func (op *Operation) describeConflict(item *models.OperationItem, dst string) models.FileConflict {
	conflict := models.FileConflict{
		SourcePath: item.Source,
		DestPath:   dst,
		SourceSize: item.Size,
		DestIsDir:  op.fs.IsDirectory(dst),
	}

	if !conflict.DestIsDir {
		if size, err := op.fs.FileSize(dst); err == nil {
			conflict.DestSize = size
		}
	}
	if mod, err := op.fs.LastWriteTime(item.Source); err == nil {
		conflict.SourceModTime = mod
	}
	if mod, err := op.fs.LastWriteTime(dst); err == nil {
		conflict.DestModTime = mod
	}

	return conflict
}

// uniqueDestination generates a destination that does not exist by appending
// " (N)" before the extension, probing increasing N. It gives up after
// maxRenameAttempts.
func uniqueDestination(fs fsops.Filesystem, dst string) (string, error) {
	ext := filepath.Ext(dst)
	stem := strings.TrimSuffix(dst, ext)

	for n := 1; n <= maxRenameAttempts; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if !fs.Exists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no available name for %s after %d attempts", dst, maxRenameAttempts)
}
