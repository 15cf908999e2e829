// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges, defaults and validates the server
// configuration.
//
// Sources are applied in the following priority order (earlier sources win
// for every non-zero field):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path from CONFIG, -c or -config)
//
// The entry point is [GetStructuredConfig].
package config
