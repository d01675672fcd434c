// Package dictnotes is the Composition Root for the dictnotes note store.
//
// It connects the note domain (pkg/core) with the file adapter (pkg/adapters/fs).
// All notes live in a single JSON document; every call loads the document,
// applies one operation and flushes it back with an atomic replace when the
// operation changed something.
//
// Usage:
//
//	svc, err := dictnotes.New("/home/me/.config/dictnotes/notes.json",
//		dictnotes.WithLogger(logger),
//	)
//
//	note, err := svc.AddNote(ctx, "Buy milk", []string{"errand"}, "")
//	errands, err := svc.ListByTag(ctx, "errand")
package dictnotes
