// Package tools exposes the Gemini CLI as three named operations.
//
// The Facade is the failure-containment boundary between the Gemini client
// and whatever hosts the operations (the MCP server in production). Every
// operation returns a Response; errors and panics raised below the facade
// are converted into a single {"error": "<context>: <message>"} mapping and
// never escape to the caller.
//
// Operations:
//   - Prompt: send a free-form prompt to Gemini
//   - AnalyzeDirectory: ask a question about a whole directory tree
//   - Status: report Gemini CLI availability plus server identity
package tools
