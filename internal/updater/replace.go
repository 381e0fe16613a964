package updater

import (
	"os"
	"path/filepath"

	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/platform"
)

// TempSuffix is appended to the executable path to name the staged binary.
const TempSuffix = ".update_tmp"

// TempPath returns where the new binary is staged for exePath: the same
// directory, so the final rename stays on one filesystem.
func TempPath(exePath string) string {
	return filepath.Join(filepath.Dir(exePath), filepath.Base(exePath)+TempSuffix)
}

// ReplaceExecutable writes data next to exePath, marks it executable, and
// renames it over exePath. The rename is the only step that touches
// exePath. If any step fails the staged file is left where it is.
func ReplaceExecutable(exePath string, data []byte) error {
	tmp := TempPath(exePath)

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "writing %s", tmp)
	}

	if err := platform.Chmod(tmp, platform.ExecutableMode); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "making %s executable", tmp)
	}

	if err := os.Rename(tmp, exePath); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "replacing %s", exePath)
	}
	return nil
}
