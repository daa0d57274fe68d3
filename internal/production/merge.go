package production

import (
	"encoding/json"
	"fmt"
)

// Patch is a partial update: only the members present replace existing ones.
type Patch map[string]json.RawMessage

// DecodePatch parses a JSON object into a Patch.
func DecodePatch(data []byte) (Patch, error) {
	var patch Patch
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	if patch == nil {
		return nil, fmt.Errorf("decode patch: expected object")
	}
	return patch, nil
}

// Merge returns p with the patch members applied. The id never changes.
func (p Production) Merge(patch Patch) Production {
	out := p.Clone()
	out.apply(patch, false)
	return out
}

// Fields returns the patch member names, for logging.
func (patch Patch) Fields() []string {
	names := make([]string, 0, len(patch))
	for k := range patch {
		names = append(names, k)
	}
	return names
}
