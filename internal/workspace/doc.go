// Package workspace resolves the workspace root and config, and discovers the
// packages living under the fixed category directories (libs, domains,
// packages, apps). Discovery tolerates broken manifests: each one becomes a
// warning and the package is left out.
package workspace
