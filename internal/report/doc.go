// Package report writes and reads the run manifests.
//
// doccleaner_result_map.json is the ordered list of processing records and is
// the input of the restore tool. doccleaner_organization_plan.json groups the
// non-duplicate documents by topic with paths relative to the run folder.
// Both files are indented UTF-8 JSON written through a temp file and rename.
package report
