package failure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrReadFailed    = errors.New("ReadFailed")
	ErrProcessing    = errors.New("ProcessingError")
	ErrFatal         = errors.New("FatalError")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrProcessing
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// RecordMessage renders err for the manifest "error" field. Unreadable files
// are reported with the bare ReadFailed code; everything else keeps its full
// message so the manifest explains what happened.
func RecordMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrReadFailed) {
		return ErrReadFailed.Error()
	}
	return err.Error()
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "processing failure"
	}
	return strings.Join(parts, ": ")
}
