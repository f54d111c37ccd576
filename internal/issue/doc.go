// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and Markdown issue pages.
//
// Every resolver error kind maps to a page explaining the failure and how to fix
// it; the CLI renders the page through glamour next to the error.
package issue
