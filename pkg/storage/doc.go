// Package storage handles the rendered images of an archive.
//
// Each item gets exactly one file, <output_dir>/<name>.png. Its existence is
// the only state consulted when deciding whether to render an item again.
// Writes go through a temporary file and a rename, so an interrupted run
// never leaves a truncated PNG at the final path.
//
//	manager, err := storage.NewManager("archive/toadz")
//	if ok, _ := manager.Exists("Toad #1"); !ok {
//	    _, err = manager.SaveImage("Toad #1", bytes.NewReader(png))
//	}
package storage
