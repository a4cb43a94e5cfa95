package repository

import (
	"io"
	"log"

	"github.com/inconshreveable/go-update"
)

// BinaryUpdater replaces an executable in place. An empty TargetPath means
// the running binary.
type BinaryUpdater struct {
	TargetPath string
}

func (updater BinaryUpdater) Apply(reader io.Reader) error {
	err := update.Apply(reader, update.Options{TargetPath: updater.TargetPath})
	if err != nil {
		log.Printf("[BinaryUpdater.Apply] %v", err)
		if rerr := update.RollbackError(err); rerr != nil {
			log.Printf("[BinaryUpdater.Apply] failed to rollback from bad update: %v", rerr)
		}
		return err
	}
	return nil
}
