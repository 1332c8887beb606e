// Package mining drives batch realignment of document pairs.
//
// Each document-pair task is independent: read the two tokenized documents,
// score all candidate sentence pairs, rematch, write one alignment file. A
// fixed-size worker pool processes the task list; the only shared state is
// the read-only scorer, constructed before dispatch. Tasks whose output file
// already exists are skipped, so an interrupted batch resumes at the
// granularity of one document pair. Per-pair failures are warnings, not
// aborts.
package mining
