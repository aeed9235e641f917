// Package primitives provides versioning utilities for declarative recipe data.
package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeVersion computes a deterministic version for any JSON-encodable value.
// Priority: user-provided version, else SHA256(value JSON)[:8].
func ComputeVersion(version string, v any) string {
	if version != "" {
		return version
	}

	data, err := json.Marshal(v)
	if err != nil {
		// Fallback (should not happen for plain data)
		return fmt.Sprintf("invalid-%d", time.Now().Unix())
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
