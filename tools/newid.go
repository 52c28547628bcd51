// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// newID generates a configuration record identifier: the type prefix
// plus eight random lowercase hex characters ("workflow-3fa2b1c9").
// Short ids keep configuration documents readable while staying unique
// enough within a single project.
func newID(prefix string) string {
	id := uuid.New()
	return prefix + "-" + hex.EncodeToString(id[:4])
}
