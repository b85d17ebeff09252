// Package constants holds the user-facing diagnostic messages shared across
// the CLI, grouped loosely by the error taxonomy in the design: IoError
// (file access), DecodeError (malformed artifacts) and InvariantError
// (corrupt/inconsistent signatures).
package constants

// CLI flag validation errors.
const (
	OldFileFlagMissingError = "must provide --old-file and --signature-file"
	DiffFlagsMissingError   = "must provide --signature-file, --new-file and --delta-file"
)

// IoError messages.
const (
	UnableToCheckFileFolderExistsError = "unable to check if file exists"
	FileDoesNotExistError              = "file does not exist"
	FileIsFolderError                  = "expected a file but found a directory"
	UnableToOpenFileError              = "unable to open file"
	UnableToReadFileError              = "unable to read file"
	ShortReadError                     = "short read: file changed size while reading"
	UnableToCreateFileError            = "unable to create file"
	UnableToWriteToFileError           = "unable to write to file"
	UnableToRenameFileError            = "unable to finalize written file"

	OldFileDoesNotExistError       = "old file does not exist"
	OldFileIsFolderError           = "old file provided is a directory"
	NewFileDoesNotExistError       = "new file does not exist"
	NewFileIsFolderError           = "new file provided is a directory"
	SignatureFileDoesNotExistError = "signature file does not exist"
	SignatureFileIsFolderError     = "signature file provided is a directory"
)

// DecodeError messages.
const (
	UnableToEncodeSignatureError = "unable to encode signature"
	UnableToDecodeSignatureError = "unable to decode signature"
	UnableToEncodeDeltaError     = "unable to encode delta"
	UnableToDecodeDeltaError     = "unable to decode delta"
)

// InvariantError messages.
const (
	InvalidBlockSizeError = "signature reports a block size of zero"
)

// Core operation failures.
const (
	UnableToGenerateSignatureError = "unable to generate signature"
	UnableToGenerateDeltaError     = "unable to generate delta"
)
