package fsops

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mrz1836/postbuild/internal/domain"
)

// Apply executes ops in order and returns them with Skipped set for
// optional moves whose source was not a directory. The first failure stops execution;
// the returned slice then holds the operations completed before it.
func Apply(ops []domain.Operation, logger zerolog.Logger) ([]domain.Operation, error) {
	done := make([]domain.Operation, 0, len(ops))

	for _, op := range ops {
		if err := applyOne(&op); err != nil {
			logger.Error().
				Err(err).
				Str("kind", string(op.Kind)).
				Str("source", op.Source).
				Str("destination", op.Destination).
				Msg("operation failed")
			return done, err
		}

		logger.Debug().
			Str("kind", string(op.Kind)).
			Str("source", op.Source).
			Str("destination", op.Destination).
			Bool("skipped", op.Skipped).
			Msg("operation applied")

		done = append(done, op)
	}

	return done, nil
}

func applyOne(op *domain.Operation) error {
	switch op.Kind {
	case domain.OpMkdir:
		return Mkdir(op.Destination)
	case domain.OpMove:
		return Move(op.Source, op.Destination)
	case domain.OpMoveIfExists:
		moved, err := MoveDirIfExists(op.Source, op.Destination)
		op.Skipped = !moved && err == nil
		return err
	case domain.OpDelete:
		return Remove(op.Source)
	default:
		return fmt.Errorf("unsupported operation kind %q", op.Kind) //nolint:err113 // programming error
	}
}
