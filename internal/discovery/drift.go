package discovery

import (
	"sort"
)

// DetectDrift analyzes a scan result and identifies version disagreements.
// The primary candidate's version is the expected version and any candidate
// that differs is flagged.
func DetectDrift(result *Result) []Drift {
	if result == nil {
		return nil
	}

	wantVersion := result.PrimaryVersion()
	if wantVersion == "" {
		// No primary version, nothing to compare against
		return nil
	}

	return DetectDriftFrom(result, wantVersion)
}

// DetectDriftFrom checks for disagreements against a specified base version.
func DetectDriftFrom(result *Result, baseVersion string) []Drift {
	if result == nil || baseVersion == "" {
		return nil
	}

	var drifts []Drift

	for _, c := range result.Candidates {
		if c.Version != "" && c.Version != baseVersion {
			drifts = append(drifts, Drift{
				Source:      c.RelPath,
				WantVersion: baseVersion,
				GotVersion:  c.Version,
			})
		}
	}

	// Sort by source path for consistent output
	sort.Slice(drifts, func(i, j int) bool {
		return drifts[i].Source < drifts[j].Source
	})

	return drifts
}

// UniqueVersions returns the distinct versions found in the scan result.
func UniqueVersions(result *Result) []string {
	if result == nil {
		return nil
	}

	versionSet := make(map[string]struct{})
	for _, c := range result.Candidates {
		if c.Version != "" {
			versionSet[c.Version] = struct{}{}
		}
	}

	versions := make([]string, 0, len(versionSet))
	for v := range versionSet {
		versions = append(versions, v)
	}

	// Sort for consistent output
	sort.Strings(versions)

	return versions
}

// IsConsistent returns true if all discovered candidates agree on the version.
func IsConsistent(result *Result) bool {
	if result == nil {
		return true
	}

	return len(UniqueVersions(result)) <= 1
}
