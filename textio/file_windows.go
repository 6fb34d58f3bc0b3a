package textio

// SyncDir is a no-op on Windows, which cannot fsync a directory handle.
func SyncDir(dirName string) error {
	return nil
}
