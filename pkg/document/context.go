package document

import (
	"fmt"

	"github.com/githubnext/flowlint/pkg/config"
	"github.com/githubnext/flowlint/pkg/provider"
	"github.com/githubnext/flowlint/pkg/validation"
)

// BuildContext prepares the validation context for doc. Connections from
// cfg come first, so they win over the document's own for the same model.
// A nil cfg means defaults.
func BuildContext(doc *Document, cfg *config.Config) (*validation.Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	lib, err := cfg.Library()
	if err != nil {
		return nil, err
	}

	conns := make([]provider.Connection, 0, len(cfg.Connections)+len(doc.Connections))
	conns = append(conns, cfg.Connections...)
	conns = append(conns, doc.Connections...)

	for _, a := range doc.Agents {
		if a.ID == "" {
			return nil, fmt.Errorf("agent %q has no id", a.Name)
		}
	}
	return validation.NewContext(doc.ToFlow(), doc.Agents, conns, lib), nil
}
