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
	"github.com/arnevoss/blocksync/models"
	blocksync "github.com/arnevoss/blocksync/sync"
	"github.com/arnevoss/blocksync/utils"
)

// Overridable for testing, matching the teacher's dependency-injection style.
var (
	decodeSignature = codec.DecodeSignature
	scanDelta       = blocksync.GenerateDelta
	encodeDelta     = codec.EncodeDelta
)

func newGenerateDiffCommand() *cobra.Command {
	var signatureFile, newFile, deltaFile string
	var verbose bool

	command := &cobra.Command{
		Use:   "generate-diff",
		Short: "Build a delta of a new file against an existing signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDiff(signatureFile, newFile, deltaFile, verbose)
		},
	}

	flags := command.Flags()
	flags.StringVar(&signatureFile, "signature-file", "", "Path to the signature produced by generate-signature")
	flags.StringVar(&newFile, "new-file", "", "Path to the new (updated) file")
	flags.StringVar(&deltaFile, "delta-file", "", "Path to write the generated delta to")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable extended logging")

	return command
}

// runGenerateDiff reads signatureFile and newFile, scans newFile against the
// decoded signature, and writes the resulting delta to deltaFile.
func runGenerateDiff(signatureFile, newFile, deltaFile string, verbose bool) error {
	if signatureFile == "" || newFile == "" || deltaFile == "" {
		return errors.New(constants.DiffFlagsMissingError)
	}

	signatureBytes, err := readFile(signatureFile)
	if err != nil {
		if errors.Is(err, files.ErrNotExist) {
			return errors.New(constants.SignatureFileDoesNotExistError)
		}
		if errors.Is(err, files.ErrIsDir) {
			return errors.New(constants.SignatureFileIsFolderError)
		}
		return errors.Wrap(err, constants.UnableToDecodeSignatureError)
	}

	signature, err := decodeSignature(bytes.NewReader(signatureBytes))
	if err != nil {
		return errors.Wrap(err, constants.UnableToDecodeSignatureError)
	}
	if signature.BlockSize == 0 {
		return errors.New(constants.InvalidBlockSizeError)
	}

	utils.Logger(fmt.Sprintf("signature: block size %d, %d blocks", signature.BlockSize, signature.BlockCount()), verbose)

	newData, err := readFile(newFile)
	if err != nil {
		if errors.Is(err, files.ErrNotExist) {
			return errors.New(constants.NewFileDoesNotExistError)
		}
		if errors.Is(err, files.ErrIsDir) {
			return errors.New(constants.NewFileIsFolderError)
		}
		return errors.Wrap(err, constants.UnableToGenerateDeltaError)
	}

	utils.Logger(fmt.Sprintf("new file: %s (%s)", newFile, humanize.Bytes(uint64(len(newData)))), verbose)

	delta := scanDelta(newData, signature)
	utils.Logger(fmt.Sprintf("delta: %d records", len(delta)), verbose)
	if verbose {
		logDeltaComposition(delta)
	}

	var buffer bytes.Buffer
	if err := encodeDelta(&buffer, delta); err != nil {
		return errors.Wrap(err, constants.UnableToGenerateDeltaError)
	}

	if err := writeFileAtomic(deltaFile, buffer.Bytes()); err != nil {
		return errors.Wrap(err, constants.UnableToWriteToFileError)
	}

	utils.Success(fmt.Sprintf("wrote delta to %s (%s, %d records)", deltaFile, humanize.Bytes(uint64(buffer.Len())), len(delta)))
	return nil
}

// logDeltaComposition logs the total number of match and literal records in
// delta as one line, after the scan has finished; nothing is logged while
// the scan is running.
func logDeltaComposition(delta models.Delta) {
	var matches, literals int
	for _, record := range delta {
		if record.Kind == models.KindMatch {
			matches++
		} else {
			literals++
		}
	}
	utils.Logger(fmt.Sprintf("delta composition: %d matches, %d literals", matches, literals), true)
}
