// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package jobsource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/jsonc"
)

// LoadAgents reads the agent-to-model display map, a JSONC file (JSON
// extended with comments and trailing commas) mapping agent
// identifier to model display name:
//
//	{
//	  // local agents
//	  "agent-red": "opus",
//	  "agent-blue": "sonnet",
//	}
//
// The file is optional: an empty path or a missing file yields an
// empty map and a nil error. Unknown agents render as their raw
// identifier, so the map only ever improves the display.
func LoadAgents(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	stripped := jsonc.ToJSON(data)
	agents := map[string]string{}
	if err := json.Unmarshal(stripped, &agents); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return agents, nil
}
