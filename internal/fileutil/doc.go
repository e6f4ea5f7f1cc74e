// Package fileutil is the narrow filesystem seam shared by the detector,
// organizer, report and restore packages.
//
// Every helper takes an afero.Fs so production code runs on afero.NewOsFs
// while tests use afero.NewMemMapFs. Move prefers an atomic rename and falls
// back to a hash-verified copy plus removal when the rename crosses devices.
package fileutil
