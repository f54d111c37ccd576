// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error: what was attempted, on which
	// resource, and how to fix it.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("resolve command tree").
	//		WithResource("./tool.yaml").
	//		WithSuggestion("Run 'cmdspec validate ./tool.yaml' for details").
	//		Wrap(originalErr).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "load manifest".
		Operation   string
		Resource    string
		Suggestions []string
		Cause       error
	}

	// ErrorContext builds ActionableError values.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext wraps an error with operation and resource context.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error returns a one-line message: "failed to <operation>: <resource>: <cause>".
// Joined causes are separated by "; ".
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(strings.Join(leafMessages(e.Cause), "; "))
	}
	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// HasSuggestions returns true if the error has any suggestions.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// Issue returns the issue page matching the cause, if any.
func (e *ActionableError) Issue() *Issue {
	return ForError(e.Cause)
}

// Format returns the message followed by one bullet per suggestion. In
// verbose mode the error chain is appended, with joined errors listed as
// branches of the chain.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		writeChain(&msg, e.Cause, 1, "  ")
	}
	return msg.String()
}

// Markdown renders the error as a Markdown document: the failure, each
// joined cause, the suggestions and the matching issue page.
func (e *ActionableError) Markdown() string {
	var md strings.Builder
	md.WriteString("# Failed to " + e.Operation + "\n\n")
	if e.Resource != "" {
		md.WriteString("`" + e.Resource + "`\n\n")
	}
	if e.Cause != nil {
		for _, m := range leafMessages(e.Cause) {
			md.WriteString("- " + m + "\n")
		}
		md.WriteString("\n")
	}
	if len(e.Suggestions) > 0 {
		md.WriteString("## Suggestions\n\n")
		for _, s := range e.Suggestions {
			md.WriteString("- " + s + "\n")
		}
	}
	if is := e.Issue(); is != nil {
		md.WriteString("\n---\n")
		md.WriteString(string(is.MarkdownMsg()))
		md.WriteString("\n")
	}
	return md.String()
}

// Render renders Markdown() with a glamour style.
func (e *ActionableError) Render(stylePath string) (string, error) {
	return render(e.Markdown(), stylePath)
}

func writeChain(sb *strings.Builder, err error, depth int, indent string) {
	for err != nil {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			errs := joined.Unwrap()
			fmt.Fprintf(sb, "\n%s%d. %d errors", indent, depth, len(errs))
			for _, sub := range errs {
				writeChain(sb, sub, depth+1, indent+"  ")
			}
			return
		}
		fmt.Fprintf(sb, "\n%s%d. %s", indent, depth, err.Error())
		err = errors.Unwrap(err)
		depth++
	}
}

// leafMessages splits joined errors into their individual messages.
func leafMessages(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok && isJoin(err) {
		var msgs []string
		for _, sub := range joined.Unwrap() {
			msgs = append(msgs, leafMessages(sub)...)
		}
		return msgs
	}
	return []string{err.Error()}
}

// isJoin reports whether err's message is exactly its parts joined by
// newlines, as errors.Join produces. Types with their own Unwrap() []error
// keep their message.
func isJoin(err error) bool {
	joined := err.(interface{ Unwrap() []error }).Unwrap()
	parts := make([]string, len(joined))
	for i, sub := range joined {
		parts[i] = sub.Error()
	}
	return err.Error() == strings.Join(parts, "\n")
}

// WithOperation sets the operation being performed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the resource (file, path, identity) involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion adds a suggestion for how to fix the issue.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions adds multiple suggestions at once.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates an ActionableError, or nil when no operation is set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError is Build returning the error interface. It returns a nil
// interface, not a typed nil, when no operation is set.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
