// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package jobsource

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cronview/cronview/lib/schema/job"
)

// Parse extracts a job list from a JSON payload. The automation CLI
// has changed its output envelope across releases, so three shapes
// are accepted, tried in order: {"jobs": [...]}, {"data": [...]},
// and a bare top-level array.
//
// Valid JSON in none of those shapes (an object with neither key, a
// scalar, null) yields an empty list and a nil error: the dashboard
// renders an empty view rather than failing. Malformed JSON is an
// error. Array elements that do not decode as a job object are
// skipped and counted; skipped reports how many, so callers can log
// it.
func Parse(data []byte) (jobs []job.Job, skipped int, err error) {
	list, err := extractList(data)
	if err != nil {
		return nil, 0, err
	}

	jobs = make([]job.Job, 0, len(list))
	for _, element := range list {
		var entry job.Job
		if err := json.Unmarshal(element, &entry); err != nil {
			skipped++
			continue
		}
		jobs = append(jobs, entry)
	}
	return jobs, skipped, nil
}

// extractList locates the job array inside one of the recognized
// payload shapes. A nil result with a nil error means the payload was
// valid JSON in an unrecognized shape.
func extractList(data []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Jobs []json.RawMessage `json:"jobs"`
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Jobs != nil {
			return envelope.Jobs, nil
		}
		return envelope.Data, nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	// Neither an object nor an array. Distinguish a scalar payload
	// (tolerated) from syntactically broken JSON (reported).
	var anything any
	if err := json.Unmarshal(data, &anything); err != nil {
		return nil, fmt.Errorf("parsing jobs payload: %w", err)
	}
	return nil, nil
}

// LoadFile reads a jobs file and parses it with the same tolerance as
// Parse.
func LoadFile(path string) (jobs []job.Job, skipped int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	jobs, skipped, err = Parse(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return jobs, skipped, nil
}
