package cmd

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/arnevoss/blocksync/codec"
	"github.com/arnevoss/blocksync/constants"
	"github.com/arnevoss/blocksync/files"
	blocksync "github.com/arnevoss/blocksync/sync"
	"github.com/arnevoss/blocksync/utils"
)

// Overridable for testing, matching the teacher's dependency-injection style.
var (
	readFile        = files.ReadFile
	writeFileAtomic = files.WriteFileAtomic
	buildSignature  = blocksync.BuildSignature
	encodeSignature = codec.EncodeSignature
)

func newGenerateSignatureCommand() *cobra.Command {
	var oldFile, signatureFile string
	var verbose bool

	command := &cobra.Command{
		Use:   "generate-signature",
		Short: "Build the block signature of an existing file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateSignature(oldFile, signatureFile, verbose)
		},
	}

	flags := command.Flags()
	flags.StringVar(&oldFile, "old-file", "", "Path to the existing (old) file")
	flags.StringVar(&signatureFile, "signature-file", "", "Path to write the generated signature to")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable extended logging")

	return command
}

// runGenerateSignature reads the old file, builds its block signature, and
// writes it to signatureFile.
func runGenerateSignature(oldFile, signatureFile string, verbose bool) error {
	if oldFile == "" || signatureFile == "" {
		return errors.New(constants.OldFileFlagMissingError)
	}

	data, err := readFile(oldFile)
	if err != nil {
		if errors.Is(err, files.ErrNotExist) {
			return errors.New(constants.OldFileDoesNotExistError)
		}
		if errors.Is(err, files.ErrIsDir) {
			return errors.New(constants.OldFileIsFolderError)
		}
		return errors.Wrap(err, constants.UnableToGenerateSignatureError)
	}

	utils.Logger(fmt.Sprintf("old file: %s (%s)", oldFile, humanize.Bytes(uint64(len(data)))), verbose)

	signature := buildSignature(data)
	utils.Logger(fmt.Sprintf("block size: %d, blocks: %d", signature.BlockSize, signature.BlockCount()), verbose)

	var buffer bytes.Buffer
	if err := encodeSignature(&buffer, signature); err != nil {
		return errors.Wrap(err, constants.UnableToGenerateSignatureError)
	}

	if err := writeFileAtomic(signatureFile, buffer.Bytes()); err != nil {
		return errors.Wrap(err, constants.UnableToWriteToFileError)
	}

	utils.Success(fmt.Sprintf("wrote signature to %s (%s, %d blocks)", signatureFile, humanize.Bytes(uint64(buffer.Len())), signature.BlockCount()))
	return nil
}
