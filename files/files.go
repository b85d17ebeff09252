// Package files provides the whole-file read/write glue: opening, creating,
// and streaming the four file paths the CLI operates on. Inputs are always
// read in full and buffered in memory; writes go to a temporary file in the
// destination directory and are renamed into place, so a crash mid-write
// never leaves a partially written artifact at the destination path.
package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"

	"github.com/arnevoss/blocksync/constants"
)

var (
	// ErrNotExist is returned when the requested path does not exist.
	ErrNotExist = errors.New(constants.FileDoesNotExistError)
	// ErrIsDir is returned when a file was expected but a directory was found.
	ErrIsDir = errors.New(constants.FileIsFolderError)
)

// Overridable for testing, matching the teacher's dependency-injection style.
var (
	openFile   = os.Open
	statFile   = os.Stat
	isNotExist = os.IsNotExist
	createTemp = os.CreateTemp
	renameFile = os.Rename
	removeFile = os.Remove
)

// exists reports whether path exists. It returns ErrIsDir if isFile is true
// but path names a directory.
func exists(path string, isFile bool) (bool, error) {
	info, err := statFile(path)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, pkgerrors.Wrap(err, constants.UnableToCheckFileFolderExistsError)
	}

	if isFile && info.IsDir() {
		return false, ErrIsDir
	}

	return true, nil
}

// ReadFile reads path fully into memory. It fails with ErrNotExist if path
// does not exist, ErrIsDir if path is a directory, and a wrapped IO error on
// a short or failed read.
func ReadFile(path string) ([]byte, error) {
	found, err := exists(path, true)
	if err != nil {
		return nil, err
	} else if !found {
		return nil, ErrNotExist
	}

	file, err := openFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, constants.UnableToOpenFileError)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, pkgerrors.Wrap(err, constants.UnableToReadFileError)
	}

	if info, err := file.Stat(); err == nil && info.Mode().IsRegular() && info.Size() != int64(len(data)) {
		return nil, pkgerrors.Wrap(io.ErrUnexpectedEOF, constants.ShortReadError)
	}

	return data, nil
}

// WriteFileAtomic writes data to path by creating a temporary file in the
// same directory, writing and closing it, then renaming it over path. On any
// failure the temporary file is removed and path is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := createTemp(dir, ".blocksync-*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, constants.UnableToCreateFileError)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		removeFile(tmpName)
		return pkgerrors.Wrap(err, constants.UnableToWriteToFileError)
	}

	if err := tmp.Close(); err != nil {
		removeFile(tmpName)
		return pkgerrors.Wrap(err, constants.UnableToWriteToFileError)
	}

	if err := renameFile(tmpName, path); err != nil {
		removeFile(tmpName)
		return pkgerrors.Wrap(err, constants.UnableToRenameFileError)
	}

	return nil
}
