package logger

import "github.com/rs/zerolog"

// LogPageProgress records the running item count after a collection page
func LogPageProgress(l Logger, collection string, page, total int) {
	l.InfoWithFields("Collection page fetched", map[string]interface{}{
		"collection": collection,
		"page":       page,
		"total":      total,
	})
}

// LogSnapshotSaved records where the metadata snapshot was written
func LogSnapshotSaved(l Logger, path string, items int) {
	l.InfoWithFields("Saved metadata snapshot", map[string]interface{}{
		"path":  path,
		"items": items,
	})
}

// LogImageSaved records a newly rendered image
func LogImageSaved(l Logger, name, path string, size int) {
	l.InfoWithFields("Saved image", map[string]interface{}{
		"name": name,
		"path": path,
		"size": size,
	})
}

// LogImageSkipped records an item whose image already exists
func LogImageSkipped(l Logger, name, path string) {
	l.InfoWithFields("Image already exists", map[string]interface{}{
		"name": name,
		"path": path,
	})
}

// NewNopLogger creates a no-operation logger
func NewNopLogger() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
