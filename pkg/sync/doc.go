/*
The sync package implements musicsync's sync algorithm. It makes the tracks
in a destination directory tree match the tracks in a source tree.

Syncing happens in three steps:
1) Scan -- Both trees are walked, collecting the relative paths of tracks
   (files whose names contain ".mp3") and directories. Directories whose names
   contain a "." are skipped, and the walk stops descending at MaxDepth.
2) Plan -- The scans are diffed. Source paths that don't exist in the
   destination are added, and destination paths that aren't in the source are
   removed. Files are matched by relative path only. Contents aren't compared.
3) Apply -- The plan is executed in a fixed order: remove files, remove
   directories, create directories, and copy files.

The filesystem may change between the scan and the apply. Paths that
disappear before they're removed are reported as NOT FOUND rather than
failing the sync.
*/
package sync
