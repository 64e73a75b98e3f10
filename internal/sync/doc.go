// Package sync runs incremental catalog syncs for a single tenant collection.
//
// A Manager drives the page loop for one collection (events, event templates or
// online activities): it loads the collection checkpoint, asks the fetcher whether a
// request may be made, fetches the page after the checkpoint watermark, decodes it,
// reconciles every item into the record store and commits the checkpoint before
// requesting the next page. The loop ends when the API reports no further pages.
//
// Any error aborts the run and is returned as an *Error naming the phase that failed.
// Pages committed before the failure stay committed, so the next run resumes from the
// last committed watermark. Reconciling is idempotent, so items of a partially applied
// page are simply written again.
//
// The sync/coordinator subpackage runs every collection of every enabled tenant on a
// schedule; sync/state persists checkpoints and sync/writer persists records.
package sync
