// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the dashboard
// viewer.
//
// Configuration comes from a single file named by either the
// DASHBOARD_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no automatic file search. Without a
// file, [Default] applies.
//
// The file may contain development and production sections that
// override base values when [Config].Environment matches. Production
// without its own section forces UUID widget IDs and warn-level
// logging, and [Config.Validate] rejects sequential IDs there.
//
// Path fields (seed.path, logging.output) expand ${HOME} and
// ${VAR:-default} patterns after loading. Unknown keys are errors.
//
// This package depends on no other dashboard packages.
package config
