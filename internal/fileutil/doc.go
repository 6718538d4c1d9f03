// Package fileutil holds the filesystem primitives the pipeline stages share:
// streaming and verified copies, post-order tree removal, directory reset,
// replace-on-move, and recursive file listing.
package fileutil
