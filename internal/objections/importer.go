package objections

import (
	"fmt"
	"io"

	"github.com/jonathan/pitch-coach/internal/types"
	"gopkg.in/yaml.v3"
)

// Pack is a YAML objection pack
//
//	objections:
//	  - title: Insurance Billing
//	    objection: Will this slow down my insurance claims?
//	    difficulty: Medium
//	    follow_ups:
//	      - Which clearinghouses do you support?
type Pack struct {
	Objections []types.Objection `yaml:"objections"`
}

// ParsePack decodes a YAML pack. Unknown fields are rejected.
func ParsePack(r io.Reader) (*Pack, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var pack Pack
	if err := dec.Decode(&pack); err != nil {
		if err == io.EOF {
			return nil, &ImportError{Message: "objection pack is empty", Index: -1}
		}
		return nil, &ImportError{Message: "failed to parse objection pack", Index: -1, Cause: err}
	}
	if len(pack.Objections) == 0 {
		return nil, &ImportError{Message: "objection pack has no objections", Index: -1}
	}
	return &pack, nil
}

// Import adds every objection of the pack, all or nothing: the catalog is
// untouched if any entry is invalid.
func (c *Catalog) Import(r io.Reader) ([]types.Objection, error) {
	pack, err := ParsePack(r)
	if err != nil {
		return nil, err
	}

	staged := NewCatalog(c.Custom())
	added := make([]types.Objection, 0, len(pack.Objections))
	for i, o := range pack.Objections {
		created, err := staged.Add(o)
		if err != nil {
			return nil, &ImportError{Message: "invalid objection in pack", Index: i, Cause: err}
		}
		added = append(added, created)
	}

	c.custom = staged.custom
	return added, nil
}

// String renders a one-line summary of an objection
func String(o types.Objection) string {
	tag := ""
	if o.IsCustom {
		tag = " (custom)"
	}
	return fmt.Sprintf("#%d [%s] %s%s: %s", o.ID, o.Difficulty, o.Title, tag, o.ObjectionText)
}
