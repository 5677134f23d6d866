package species

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// Annotation is the identification commentary written for one species.
type Annotation struct {
	Text    string `json:"text"`
	Example string `json:"example"` // link to an example checklist
	WIP     bool   `json:"WIP"`     // still being written; not used in exports
}

// Annotations maps uppercase species codes to their commentary.
type Annotations map[string]Annotation

// LoadAnnotations reads the JSON commentary file at path. A missing file
// yields no annotations rather than an error.
func LoadAnnotations(path string) (Annotations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogWarn("Species comments file not found, using default comments", util.F("path", path))
			return Annotations{}, nil
		}
		return nil, fmt.Errorf("failed to read species comments: %w", err)
	}

	raw := make(map[string]Annotation)
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode species comments %s: %w", path, err)
	}

	annotations := make(Annotations, len(raw))
	for code, a := range raw {
		annotations[strings.ToUpper(code)] = a
	}
	util.LogDebugf("Loaded %d species comments from %s", len(annotations), path)
	return annotations, nil
}

// Lookup returns the finished annotation for code. Work-in-progress entries are ignored.
func (a Annotations) Lookup(code string) (Annotation, bool) {
	annotation, ok := a[strings.ToUpper(code)]
	if !ok || annotation.WIP {
		return Annotation{}, false
	}
	return annotation, true
}
