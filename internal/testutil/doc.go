// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that fail the test on setup errors.
//
// Definition builders live in the deftest subpackage.
package testutil
