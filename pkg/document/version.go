package document

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/logger"
)

var versionLog = logger.New("document:version")

// ErrUnsupportedVersion is returned for documents whose version is not a
// semantic version with a supported major.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// canonicalVersion adds the "v" prefix semver expects.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// checkVersion accepts any valid semantic version whose major matches the
// supported one. "1", "1.2" and "v1.2.3" are all fine.
func checkVersion(v string) error {
	canonical := canonicalVersion(v)
	if !semver.IsValid(canonical) {
		versionLog.Printf("Invalid document version %q", v)
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if major := semver.Major(canonical); major != constants.SupportedDocumentMajor {
		versionLog.Printf("Document major %s, supported %s", major, constants.SupportedDocumentMajor)
		return fmt.Errorf("%w: %s (this flowlint reads %s documents)", ErrUnsupportedVersion, v, constants.SupportedDocumentMajor)
	}
	return nil
}
