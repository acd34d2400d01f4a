// Package release gates and annotates a release against Jira.
//
// Verification runs the pre-flight Gate over the tickets referenced by the
// release's commits and fails if any of them is already closed. After
// publication, the Reconciler finds or creates the Jira version for the
// release and the Tagger adds it to every referenced ticket under a
// concurrency limit.
//
// The two phases share nothing except the ignore-list Resolver. A crash
// between them leaves tickets untagged; re-running publish is safe because
// version creation and fix-version edits are both idempotent.
package release
