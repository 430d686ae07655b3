// Package fs abstracts the file operations behind point-set persistence so
// tests can inject I/O failures.
//
// Production code uses Default. Tests wrap it:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
//	err := persistence.SaveToFileFS(ffs, path, ps, persistence.CompressionNone)
package fs
