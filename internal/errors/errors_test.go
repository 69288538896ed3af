package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ConfigInvalid("REPORT_SIGNIFICANCE_ALPHA out of range")
	wrapped := Wrap(base, "failed to load report configuration")

	assert.Equal(t, CodeConfigInvalid, GetCode(wrapped))
	assert.Equal(t, "failed to load report configuration: REPORT_SIGNIFICANCE_ALPHA out of range", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	wrapped := Wrapf(cause, "writing %s", "report.html")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("cli: %w", ExportFailed("xlsx", stderrors.New("boom")))
	assert.Equal(t, CodeExportFailed, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad trials file"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "bad trials file", err.Error())
}
