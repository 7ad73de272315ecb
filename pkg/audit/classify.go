package audit

import (
	"context"
	"errors"

	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
	"github.com/matzehuels/licenseaudit/pkg/integrations"
)

// classifyLookup maps a registry lookup error to an error code.
func classifyLookup(err error) lerrors.Code {
	switch {
	case lerrors.GetCode(err) != "":
		return lerrors.GetCode(err)
	case errors.Is(err, context.DeadlineExceeded):
		return lerrors.ErrCodeTimeout
	case errors.Is(err, integrations.ErrNetwork):
		return lerrors.ErrCodeNetwork
	case errors.Is(err, integrations.ErrNotFound):
		return lerrors.ErrCodePackageNotFound
	}
	return lerrors.ErrCodeInternal
}
