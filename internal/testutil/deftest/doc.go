// SPDX-License-Identifier: MPL-2.0

// Package deftest provides builders for definitions used in tests.
package deftest
